package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/metrics"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/password"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	ShopName    string `json:"shop_name" validate:"required"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerGuestRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

type passwordCheckRequest struct {
	Password string `json:"password"`
}

type passwordCheckResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Color   string `json:"color"`
}

// Register creates a new shop account, pending admin approval.
//
// @Summary      Register a new shop
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Shop registration details"
// @Success      201   {object}  domain.ShopAccount
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	shop, err := h.authService.RegisterShop(c.Request().Context(), ports.RegisterShopInput{
		Email:       req.Email,
		Password:    req.Password,
		ShopName:    req.ShopName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, shop)
}

// Login authenticates a shop owner, staff member or guest.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      423   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, "shop", h.authService.LoginShop)
}

// AdminLogin authenticates a platform administrator under the stricter
// lockout policy.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      423   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, "admin", h.authService.LoginAdmin)
}

func (h *AuthHandler) login(c echo.Context, realm string, fn func(ctx context.Context, email, pass string) (string, *domain.Identity, error)) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, identity, err := fn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(realm, loginResultLabel(err)).Inc()
		var locked *domain.LockedError
		if errors.As(err, &locked) && locked.JustLocked {
			metrics.LockoutsTotal.WithLabelValues(realm).Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(realm, "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: identity})
}

// Logout revokes the presented token until its natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "token revoked"
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	if err := h.authService.Logout(c.Request().Context(), parts[1]); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterGuest creates a receipt-only guest login under the caller's shop.
//
// @Summary      Register a guest login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerGuestRequest  true  "Guest credentials"
// @Success      201   {object}  domain.GuestAccount
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/guests [post]
func (h *AuthHandler) RegisterGuest(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req registerGuestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	guest, err := h.authService.RegisterGuest(c.Request().Context(), sess.ShopID, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, guest)
}

// CheckPassword evaluates a candidate password against the policy and returns
// its strength, so clients can show live feedback while typing.
//
// @Summary      Check password strength
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordCheckRequest  true  "Candidate password"
// @Success      200   {object}  passwordCheckResponse
// @Router       /auth/password-check [post]
func (h *AuthHandler) CheckPassword(c echo.Context) error {
	var req passwordCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	result := password.Validate(req.Password)
	score := password.Strength(req.Password)
	label := password.StrengthLabel(score)

	return c.JSON(http.StatusOK, passwordCheckResponse{
		Valid:   result.Valid,
		Message: result.Message,
		Score:   score,
		Label:   label.Text,
		Color:   label.Color,
	})
}

func loginResultLabel(err error) string {
	var locked *domain.LockedError
	if errors.As(err, &locked) {
		return "locked"
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}
