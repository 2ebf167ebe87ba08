package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// StockHandler manages a shop's inventory.
type StockHandler struct {
	stock *service.StockService
}

func NewStockHandler(stock *service.StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

type stockItemRequest struct {
	Name       string  `json:"name" validate:"required"`
	Category   string  `json:"category,omitempty"`
	Quantity   int     `json:"quantity" validate:"min=0"`
	UnitPrice  float64 `json:"unit_price" validate:"min=0"`
	LowStockAt int     `json:"low_stock_at,omitempty"`
}

func (r stockItemRequest) toInput() service.StockItemInput {
	return service.StockItemInput{
		Name:       r.Name,
		Category:   r.Category,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		LowStockAt: r.LowStockAt,
	}
}

// Create adds a stock item.
//
// @Summary      Create a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      stockItemRequest  true  "Stock item"
// @Success      201   {object}  domain.StockItem
// @Failure      400   {object}  map[string]string
// @Router       /stock [post]
func (h *StockHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req stockItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.stock.Create(c.Request().Context(), sess.ShopID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// List returns the shop's inventory.
//
// @Summary      List stock
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.StockItem
// @Router       /stock [get]
func (h *StockHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	items, err := h.stock.List(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one stock item.
//
// @Summary      Get a stock item
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Stock item id"
// @Success      200  {object}  domain.StockItem
// @Failure      404  {object}  map[string]string
// @Router       /stock/{id} [get]
func (h *StockHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	item, err := h.stock.Get(c.Request().Context(), sess.ShopID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Update replaces a stock item's writable fields.
//
// @Summary      Update a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Stock item id"
// @Param        body  body      stockItemRequest  true  "Stock item"
// @Success      200   {object}  domain.StockItem
// @Failure      404   {object}  map[string]string
// @Router       /stock/{id} [put]
func (h *StockHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req stockItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.stock.Update(c.Request().Context(), sess.ShopID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete removes a stock item.
//
// @Summary      Delete a stock item
// @Tags         stock
// @Security     BearerAuth
// @Param        id  path  string  true  "Stock item id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /stock/{id} [delete]
func (h *StockHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.stock.Delete(c.Request().Context(), sess.ShopID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
