package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// ExpenseService manages a shop's expenses and expense categories.
type ExpenseService struct {
	expenses ports.ExpenseRepository
	log      zerolog.Logger
}

func NewExpenseService(expenses ports.ExpenseRepository, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, log: log}
}

// ExpenseInput carries the writable expense fields.
type ExpenseInput struct {
	CategoryID  string
	Description string
	Amount      float64
	ExpenseDate time.Time
}

func (s *ExpenseService) CreateCategory(ctx context.Context, shopID, name string) (*domain.ExpenseCategory, error) {
	if name == "" {
		return nil, &domain.ValidationError{Message: "category name is required"}
	}
	return s.expenses.CreateCategory(ctx, &domain.ExpenseCategory{
		ShopID:    shopID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *ExpenseService) ListCategories(ctx context.Context, shopID string) ([]*domain.ExpenseCategory, error) {
	return s.expenses.ListCategories(ctx, shopID)
}

func (s *ExpenseService) DeleteCategory(ctx context.Context, shopID, id string) error {
	return s.expenses.DeleteCategory(ctx, shopID, id)
}

func (s *ExpenseService) Create(ctx context.Context, shopID string, input ExpenseInput) (*domain.Expense, error) {
	if err := validateExpense(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.expenses.Create(ctx, &domain.Expense{
		ShopID:      shopID,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Amount:      input.Amount,
		ExpenseDate: input.ExpenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *ExpenseService) Get(ctx context.Context, shopID, id string) (*domain.Expense, error) {
	return s.expenses.FindByID(ctx, shopID, id)
}

// List returns a shop's expenses newest-first, optionally narrowed to one
// category.
func (s *ExpenseService) List(ctx context.Context, shopID, categoryID string) ([]*domain.Expense, error) {
	return s.expenses.ListByShop(ctx, shopID, categoryID)
}

func (s *ExpenseService) Update(ctx context.Context, shopID, id string, input ExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenses.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, err
	}
	if err := validateExpense(input); err != nil {
		return nil, err
	}

	expense.CategoryID = input.CategoryID
	expense.Description = input.Description
	expense.Amount = input.Amount
	expense.ExpenseDate = input.ExpenseDate
	expense.UpdatedAt = time.Now().UTC()

	if err := s.expenses.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, shopID, id string) error {
	return s.expenses.Delete(ctx, shopID, id)
}

func validateExpense(input ExpenseInput) error {
	if input.Description == "" {
		return &domain.ValidationError{Message: "description is required"}
	}
	if input.Amount <= 0 {
		return &domain.ValidationError{Message: "amount must be positive"}
	}
	if input.ExpenseDate.IsZero() {
		return &domain.ValidationError{Message: "expense date is required"}
	}
	return nil
}
