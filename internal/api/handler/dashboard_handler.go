package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
)

// DashboardHandler serves the session-scoped landing views.
type DashboardHandler struct {
	analytics *service.AnalyticsService
}

func NewDashboardHandler(analytics *service.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

type dashboardResponse struct {
	Session  domain.Session        `json:"session"`
	Overview *service.ShopOverview `json:"overview,omitempty"`
}

type accountStatusResponse struct {
	ShopID string               `json:"shop_id"`
	Status domain.AccountStatus `json:"status"`
}

// Dashboard returns the caller's session plus the shop overview.
//
// @Summary      Shop dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	overview, err := h.analytics.Overview(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{Session: sess, Overview: overview})
}

// Analytics returns the shop overview for sessions holding canViewAnalytics.
//
// @Summary      Shop analytics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.ShopOverview
// @Router       /analytics [get]
func (h *DashboardHandler) Analytics(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	overview, err := h.analytics.Overview(c.Request().Context(), sess.ShopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// GuestDashboard returns the guest's session. Guests only ever see this view
// and the receipt creation form.
//
// @Summary      Guest dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /guest-dashboard [get]
func (h *DashboardHandler) GuestDashboard(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{Session: sess})
}

// AccountStatus reports the shop's approval state. It stays reachable for
// non-approved accounts, which every other shop route redirects to.
//
// @Summary      Account status
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountStatusResponse
// @Router       /account-status [get]
func (h *DashboardHandler) AccountStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountStatusResponse{ShopID: sess.ShopID, Status: sess.Status})
}
