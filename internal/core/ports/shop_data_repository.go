package ports

import (
	"context"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// StockRepository persists a shop's inventory.
type StockRepository interface {
	Create(ctx context.Context, item *domain.StockItem) (*domain.StockItem, error)
	FindByID(ctx context.Context, shopID, id string) (*domain.StockItem, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.StockItem, error)
	Update(ctx context.Context, item *domain.StockItem) error
	AdjustQuantity(ctx context.Context, shopID, id string, delta int) error
	Delete(ctx context.Context, shopID, id string) error
}

// ReceiptRepository persists receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	FindByID(ctx context.Context, shopID, id string) (*domain.Receipt, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Receipt, error)
}

// ExpenseRepository persists expenses and their categories.
type ExpenseRepository interface {
	CreateCategory(ctx context.Context, category *domain.ExpenseCategory) (*domain.ExpenseCategory, error)
	ListCategories(ctx context.Context, shopID string) ([]*domain.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, shopID, id string) error

	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	FindByID(ctx context.Context, shopID, id string) (*domain.Expense, error)
	// ListByShop returns expenses newest-first; categoryID narrows the result
	// when non-empty.
	ListByShop(ctx context.Context, shopID, categoryID string) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, shopID, id string) error
}

// PurchaseRepository persists supplier purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error)
	FindByID(ctx context.Context, shopID, id string) (*domain.Purchase, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Purchase, error)
	Update(ctx context.Context, purchase *domain.Purchase) error
}

// AttendanceRepository persists daily attendance marks.
type AttendanceRepository interface {
	// Upsert records or replaces the mark for (shopID, staffID, date).
	Upsert(ctx context.Context, record *domain.AttendanceRecord) error
	// ListByMonth returns all marks for a shop in a month ("2006-01").
	ListByMonth(ctx context.Context, shopID, month string) ([]*domain.AttendanceRecord, error)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
