package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// AttendanceHandler records daily attendance and serves the derived monthly
// salary summaries.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type markAttendanceRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
	Date    string `json:"date" validate:"required"`
	Mark    string `json:"mark" validate:"required,oneof=present absent half_day"`
}

// Mark records (or replaces) one staff member's attendance for a day.
//
// @Summary      Mark attendance
// @Tags         attendance
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  markAttendanceRequest  true  "Attendance mark"
// @Success      204  "recorded"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.attendance.Mark(c.Request().Context(), sess.ShopID, req.StaffID, req.Date, domain.AttendanceMark(req.Mark)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Month returns all attendance marks for a month (?month=YYYY-MM).
//
// @Summary      List a month's attendance
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query  string  true  "Month (YYYY-MM)"
// @Success      200  {array}  domain.AttendanceRecord
// @Failure      400  {object}  map[string]string
// @Router       /attendance [get]
func (h *AttendanceHandler) Month(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	records, err := h.attendance.Month(c.Request().Context(), sess.ShopID, c.QueryParam("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Salaries returns per-staff payable salaries for a month (?month=YYYY-MM).
//
// @Summary      Monthly salary summaries
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        month  query  string  true  "Month (YYYY-MM)"
// @Success      200  {array}  domain.SalarySummary
// @Failure      400  {object}  map[string]string
// @Router       /attendance/salaries [get]
func (h *AttendanceHandler) Salaries(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	summaries, err := h.attendance.SalarySummaries(c.Request().Context(), sess.ShopID, c.QueryParam("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}
