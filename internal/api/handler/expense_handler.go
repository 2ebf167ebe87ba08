package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// ExpenseHandler manages a shop's expenses and expense categories.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type expenseRequest struct {
	CategoryID  string  `json:"category_id,omitempty"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	// ExpenseDate is the day the money was spent, in YYYY-MM-DD.
	ExpenseDate string `json:"expense_date" validate:"required"`
}

func (r expenseRequest) toInput() (service.ExpenseInput, error) {
	date, err := time.Parse("2006-01-02", r.ExpenseDate)
	if err != nil {
		return service.ExpenseInput{}, &domain.ValidationError{Message: "expense_date must be in YYYY-MM-DD format"}
	}
	return service.ExpenseInput{
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Amount:      r.Amount,
		ExpenseDate: date,
	}, nil
}

// CreateCategory adds an expense category.
//
// @Summary      Create an expense category
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  domain.ExpenseCategory
// @Failure      400   {object}  map[string]string
// @Router       /expenses/categories [post]
func (h *ExpenseHandler) CreateCategory(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	category, err := h.expenses.CreateCategory(c.Request().Context(), sess.ShopID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// ListCategories returns the shop's expense categories.
//
// @Summary      List expense categories
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ExpenseCategory
// @Router       /expenses/categories [get]
func (h *ExpenseHandler) ListCategories(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	categories, err := h.expenses.ListCategories(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// DeleteCategory removes an expense category.
//
// @Summary      Delete an expense category
// @Tags         expenses
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /expenses/categories/{id} [delete]
func (h *ExpenseHandler) DeleteCategory(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.expenses.DeleteCategory(c.Request().Context(), sess.ShopID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Create records an expense.
//
// @Summary      Create an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  map[string]string
// @Router       /expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	expense, err := h.expenses.Create(c.Request().Context(), sess.ShopID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, expense)
}

// List returns the shop's expenses, optionally narrowed to one category via
// the category query parameter.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        category  query  string  false  "Category id filter"
// @Success      200  {array}  domain.Expense
// @Router       /expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenses.List(c.Request().Context(), sess.ShopID, c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

// Update replaces an expense's writable fields.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Expense id"
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      200   {object}  domain.Expense
// @Failure      404   {object}  map[string]string
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	expense, err := h.expenses.Update(c.Request().Context(), sess.ShopID, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete removes an expense.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id  path  string  true  "Expense id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.expenses.Delete(c.Request().Context(), sess.ShopID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
