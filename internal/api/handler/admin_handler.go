package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// AdminHandler exposes the platform administration endpoints.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved frozen rejected"`
}

// ListShops returns every registered shop with its approval status.
//
// @Summary      List registered shops
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ShopAccount
// @Failure      401  {object}  map[string]string
// @Router       /admin/shops [get]
func (h *AdminHandler) ListShops(c echo.Context) error {
	shops, err := h.admin.ListShops(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shops)
}

// SetShopStatus applies an approve/reject/freeze/unfreeze transition.
//
// @Summary      Change a shop's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Shop id"
// @Param        body  body      setStatusRequest  true  "Target status"
// @Success      200   {object}  domain.ShopAccount
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/shops/{id}/status [put]
func (h *AdminHandler) SetShopStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	shop, err := h.admin.SetShopStatus(c.Request().Context(), sess.Identity.Email, c.Param("id"), domain.AccountStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}
