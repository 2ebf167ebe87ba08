package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// PurchaseService tracks supplier purchases. Receiving a purchase linked to a
// stock item tops up its quantity.
type PurchaseService struct {
	purchases ports.PurchaseRepository
	stock     ports.StockRepository
	log       zerolog.Logger
}

func NewPurchaseService(purchases ports.PurchaseRepository, stock ports.StockRepository, log zerolog.Logger) *PurchaseService {
	return &PurchaseService{purchases: purchases, stock: stock, log: log}
}

// PurchaseInput carries a new supplier order.
type PurchaseInput struct {
	Supplier     string
	StockItemID  string
	ItemName     string
	Quantity     int
	UnitCost     float64
	PurchaseDate time.Time
}

func (s *PurchaseService) Create(ctx context.Context, shopID string, input PurchaseInput) (*domain.Purchase, error) {
	if input.Supplier == "" || input.ItemName == "" {
		return nil, &domain.ValidationError{Message: "supplier and item name are required"}
	}
	if input.Quantity <= 0 {
		return nil, &domain.ValidationError{Message: "quantity must be positive"}
	}

	now := time.Now().UTC()
	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	return s.purchases.Create(ctx, &domain.Purchase{
		ShopID:       shopID,
		Supplier:     input.Supplier,
		StockItemID:  input.StockItemID,
		ItemName:     input.ItemName,
		Quantity:     input.Quantity,
		UnitCost:     input.UnitCost,
		Status:       domain.PurchaseOrdered,
		PurchaseDate: purchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *PurchaseService) List(ctx context.Context, shopID string) ([]*domain.Purchase, error) {
	return s.purchases.ListByShop(ctx, shopID)
}

// MarkReceived closes out an ordered purchase and, when linked, adds the
// received quantity to the stock item.
func (s *PurchaseService) MarkReceived(ctx context.Context, shopID, id string) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseOrdered {
		return nil, &domain.ValidationError{Message: "only ordered purchases can be received"}
	}

	purchase.Status = domain.PurchaseReceived
	purchase.UpdatedAt = time.Now().UTC()
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}

	if purchase.StockItemID != "" {
		if err := s.stock.AdjustQuantity(ctx, shopID, purchase.StockItemID, purchase.Quantity); err != nil {
			s.log.Error().Err(err).Str("stock_id", purchase.StockItemID).Msg("failed to top up stock for received purchase")
		}
	}
	return purchase, nil
}

// Cancel voids an ordered purchase.
func (s *PurchaseService) Cancel(ctx context.Context, shopID, id string) (*domain.Purchase, error) {
	purchase, err := s.purchases.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseOrdered {
		return nil, &domain.ValidationError{Message: "only ordered purchases can be canceled"}
	}

	purchase.Status = domain.PurchaseCanceled
	purchase.UpdatedAt = time.Now().UTC()
	if err := s.purchases.Update(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}
