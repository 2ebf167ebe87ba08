package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// StockService manages a shop's inventory.
type StockService struct {
	stock ports.StockRepository
	log   zerolog.Logger
}

func NewStockService(stock ports.StockRepository, log zerolog.Logger) *StockService {
	return &StockService{stock: stock, log: log}
}

// StockItemInput carries the writable stock item fields.
type StockItemInput struct {
	Name       string
	Category   string
	Quantity   int
	UnitPrice  float64
	LowStockAt int
}

func (s *StockService) Create(ctx context.Context, shopID string, input StockItemInput) (*domain.StockItem, error) {
	if input.Name == "" {
		return nil, &domain.ValidationError{Message: "item name is required"}
	}
	if input.Quantity < 0 || input.UnitPrice < 0 {
		return nil, &domain.ValidationError{Message: "quantity and unit price must not be negative"}
	}

	now := time.Now().UTC()
	item := &domain.StockItem{
		ShopID:     shopID,
		Name:       input.Name,
		Category:   input.Category,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		LowStockAt: input.LowStockAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.stock.Create(ctx, item)
}

func (s *StockService) Get(ctx context.Context, shopID, id string) (*domain.StockItem, error) {
	return s.stock.FindByID(ctx, shopID, id)
}

func (s *StockService) List(ctx context.Context, shopID string) ([]*domain.StockItem, error) {
	return s.stock.ListByShop(ctx, shopID)
}

func (s *StockService) Update(ctx context.Context, shopID, id string, input StockItemInput) (*domain.StockItem, error) {
	item, err := s.stock.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, &domain.ValidationError{Message: "item name is required"}
	}

	item.Name = input.Name
	item.Category = input.Category
	item.Quantity = input.Quantity
	item.UnitPrice = input.UnitPrice
	item.LowStockAt = input.LowStockAt
	item.UpdatedAt = time.Now().UTC()

	if err := s.stock.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *StockService) Delete(ctx context.Context, shopID, id string) error {
	return s.stock.Delete(ctx, shopID, id)
}
