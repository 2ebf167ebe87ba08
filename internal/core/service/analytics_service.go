package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// AnalyticsService aggregates a shop's records into the dashboard overview.
type AnalyticsService struct {
	receipts ports.ReceiptRepository
	expenses ports.ExpenseRepository
	stock    ports.StockRepository
	staff    ports.StaffRepository
	log      zerolog.Logger
}

func NewAnalyticsService(receipts ports.ReceiptRepository, expenses ports.ExpenseRepository, stock ports.StockRepository, staff ports.StaffRepository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{receipts: receipts, expenses: expenses, stock: stock, staff: staff, log: log}
}

// ShopOverview is the aggregate view backing the dashboard and analytics
// pages.
type ShopOverview struct {
	ReceiptCount  int     `json:"receipt_count"`
	Revenue       float64 `json:"revenue"`
	ExpenseTotal  float64 `json:"expense_total"`
	StockItems    int     `json:"stock_items"`
	LowStockItems int     `json:"low_stock_items"`
	StaffCount    int     `json:"staff_count"`
}

// Overview tallies receipts, expenses, stock and staff for one shop.
func (s *AnalyticsService) Overview(ctx context.Context, shopID string) (*ShopOverview, error) {
	overview := &ShopOverview{}

	receipts, err := s.receipts.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	overview.ReceiptCount = len(receipts)
	for _, r := range receipts {
		overview.Revenue += r.Total
	}

	expenses, err := s.expenses.ListByShop(ctx, shopID, "")
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		overview.ExpenseTotal += e.Amount
	}

	items, err := s.stock.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	overview.StockItems = len(items)
	for _, item := range items {
		if item.LowStock() {
			overview.LowStockItems++
		}
	}

	roster, err := s.staff.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	overview.StaffCount = len(roster)

	return overview, nil
}
