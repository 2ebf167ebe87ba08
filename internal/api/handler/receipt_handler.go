package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/metrics"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// ReceiptHandler records and lists sales. Creation is the one endpoint guests
// can reach.
type ReceiptHandler struct {
	receipts *service.ReceiptService
}

func NewReceiptHandler(receipts *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

type receiptItemRequest struct {
	Name string `json:"name" validate:"required"`
	// StockItemID, when set, decrements the matching stock item.
	StockItemID string  `json:"stock_item_id,omitempty"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"min=0"`
}

type createReceiptRequest struct {
	CustomerName string               `json:"customer_name,omitempty"`
	Items        []receiptItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Create records a sale.
//
// @Summary      Create a receipt
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReceiptRequest  true  "Receipt details"
// @Success      201   {object}  domain.Receipt
// @Failure      400   {object}  map[string]string
// @Router       /receipts [post]
func (h *ReceiptHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createReceiptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input := service.CreateReceiptInput{
		CustomerName: req.CustomerName,
		Items:        make([]domain.ReceiptItem, len(req.Items)),
		StockItemIDs: make([]string, len(req.Items)),
	}
	for i, item := range req.Items {
		input.Items[i] = domain.ReceiptItem{Name: item.Name, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		input.StockItemIDs[i] = item.StockItemID
	}

	receipt, err := h.receipts.Create(c.Request().Context(), sess.ShopID, sess.Identity.ID, input)
	if err != nil {
		return err
	}

	metrics.ReceiptsCreatedTotal.WithLabelValues(string(sess.Role)).Inc()
	return c.JSON(http.StatusCreated, receipt)
}

// List returns the shop's receipts, newest first.
//
// @Summary      List receipts
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Receipt
// @Router       /receipts [get]
func (h *ReceiptHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	receipts, err := h.receipts.List(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, receipts)
}

// Get returns one receipt.
//
// @Summary      Get a receipt
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Receipt id"
// @Success      200  {object}  domain.Receipt
// @Failure      404  {object}  map[string]string
// @Router       /receipts/{id} [get]
func (h *ReceiptHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	receipt, err := h.receipts.Get(c.Request().Context(), sess.ShopID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, receipt)
}
