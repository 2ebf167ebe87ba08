package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// PurchaseHandler tracks supplier purchases.
type PurchaseHandler struct {
	purchases *service.PurchaseService
}

func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

type createPurchaseRequest struct {
	Supplier    string  `json:"supplier" validate:"required"`
	StockItemID string  `json:"stock_item_id,omitempty"`
	ItemName    string  `json:"item_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitCost    float64 `json:"unit_cost" validate:"min=0"`
	// PurchaseDate is the order date in YYYY-MM-DD; today when omitted.
	PurchaseDate string `json:"purchase_date,omitempty"`
}

// Create places a supplier order.
//
// @Summary      Create a purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPurchaseRequest  true  "Purchase details"
// @Success      201   {object}  domain.Purchase
// @Failure      400   {object}  map[string]string
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var purchaseDate time.Time
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return &domain.ValidationError{Message: "purchase_date must be in YYYY-MM-DD format"}
		}
	}

	purchase, err := h.purchases.Create(c.Request().Context(), sess.ShopID, service.PurchaseInput{
		Supplier:     req.Supplier,
		StockItemID:  req.StockItemID,
		ItemName:     req.ItemName,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		PurchaseDate: purchaseDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, purchase)
}

// List returns the shop's purchases, newest first.
//
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Purchase
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	purchases, err := h.purchases.List(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchases)
}

// Receive marks an ordered purchase as received, topping up linked stock.
//
// @Summary      Receive a purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Purchase id"
// @Success      200  {object}  domain.Purchase
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	purchase, err := h.purchases.MarkReceived(c.Request().Context(), sess.ShopID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchase)
}

// Cancel voids an ordered purchase.
//
// @Summary      Cancel a purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Purchase id"
// @Success      200  {object}  domain.Purchase
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	purchase, err := h.purchases.Cancel(c.Request().Context(), sess.ShopID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchase)
}
