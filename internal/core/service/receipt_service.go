package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// ReceiptService creates and lists receipts. Guests may create receipts for
// their shop; viewing is gated by the route guard.
type ReceiptService struct {
	receipts ports.ReceiptRepository
	stock    ports.StockRepository
	log      zerolog.Logger
}

func NewReceiptService(receipts ports.ReceiptRepository, stock ports.StockRepository, log zerolog.Logger) *ReceiptService {
	return &ReceiptService{receipts: receipts, stock: stock, log: log}
}

// CreateReceiptInput carries a new receipt.
type CreateReceiptInput struct {
	CustomerName string
	Items        []domain.ReceiptItem
	// StockItemIDs, when provided per line, decrement the matching stock
	// item quantities. Empty entries skip the adjustment.
	StockItemIDs []string
}

func (s *ReceiptService) Create(ctx context.Context, shopID, createdBy string, input CreateReceiptInput) (*domain.Receipt, error) {
	if len(input.Items) == 0 {
		return nil, &domain.ValidationError{Message: "a receipt needs at least one item"}
	}

	var total float64
	for _, item := range input.Items {
		if item.Name == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, &domain.ValidationError{Message: "each item needs a name, a positive quantity and a non-negative price"}
		}
		total += item.Total()
	}

	receipt := &domain.Receipt{
		ReceiptNumber: generateReceiptNumber(),
		ShopID:        shopID,
		CustomerName:  input.CustomerName,
		Items:         input.Items,
		Total:         total,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.receipts.Create(ctx, receipt)
	if err != nil {
		return nil, err
	}

	// Stock adjustments are best-effort: the sale is already recorded, a
	// failed decrement only skews the inventory count.
	for i, stockID := range input.StockItemIDs {
		if stockID == "" || i >= len(input.Items) {
			continue
		}
		if err := s.stock.AdjustQuantity(ctx, shopID, stockID, -input.Items[i].Quantity); err != nil {
			s.log.Error().Err(err).Str("stock_id", stockID).Msg("failed to decrement stock for receipt")
		}
	}

	s.log.Info().Str("shop_id", shopID).Str("receipt_number", created.ReceiptNumber).Msg("receipt created")
	return created, nil
}

func (s *ReceiptService) Get(ctx context.Context, shopID, id string) (*domain.Receipt, error) {
	return s.receipts.FindByID(ctx, shopID, id)
}

func (s *ReceiptService) List(ctx context.Context, shopID string) ([]*domain.Receipt, error) {
	return s.receipts.ListByShop(ctx, shopID)
}

// generateReceiptNumber returns a receipt number in the format RCP-XXXXXXXX.
func generateReceiptNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("RCP-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("RCP-%08X", b)
}
