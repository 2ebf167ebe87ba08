package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// StaffHandler manages a shop's staff roster.
type StaffHandler struct {
	staff ports.StaffService
}

func NewStaffHandler(staff ports.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

type createStaffRequest struct {
	Name        string               `json:"name" validate:"required"`
	Email       string               `json:"email" validate:"required,email"`
	Password    string               `json:"password" validate:"required"`
	RoleLabel   string               `json:"role_label,omitempty"`
	MonthlyPay  float64              `json:"monthly_pay,omitempty"`
	Permissions domain.PermissionSet `json:"permissions"`
}

type updateStaffRequest struct {
	Name        string               `json:"name" validate:"required"`
	RoleLabel   string               `json:"role_label,omitempty"`
	MonthlyPay  float64              `json:"monthly_pay,omitempty"`
	Permissions domain.PermissionSet `json:"permissions"`
}

// Create enrols a staff member with their own login and permission set.
//
// @Summary      Create a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Staff details"
// @Success      201   {object}  domain.StaffRecord
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /employees [post]
func (h *StaffHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	record, err := h.staff.Create(c.Request().Context(), sess.ShopID, ports.CreateStaffInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		RoleLabel:   req.RoleLabel,
		MonthlyPay:  req.MonthlyPay,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// List returns the shop's staff roster.
//
// @Summary      List staff
// @Tags         staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.StaffRecord
// @Router       /employees [get]
func (h *StaffHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	records, err := h.staff.List(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Update changes a staff member's profile and permissions.
//
// @Summary      Update a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Staff id"
// @Param        body  body      updateStaffRequest  true  "Staff details"
// @Success      200   {object}  domain.StaffRecord
// @Failure      404   {object}  map[string]string
// @Router       /employees/{id} [put]
func (h *StaffHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	record, err := h.staff.Update(c.Request().Context(), sess.ShopID, c.Param("id"), ports.UpdateStaffInput{
		Name:        req.Name,
		RoleLabel:   req.RoleLabel,
		MonthlyPay:  req.MonthlyPay,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Delete removes a staff member from the roster.
//
// @Summary      Delete a staff member
// @Tags         staff
// @Security     BearerAuth
// @Param        id  path  string  true  "Staff id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /employees/{id} [delete]
func (h *StaffHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.staff.Delete(c.Request().Context(), sess.ShopID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
