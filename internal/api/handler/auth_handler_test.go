package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error)
	registerGuestFn func(ctx context.Context, shopID, email, pass string) (*domain.GuestAccount, error)
	loginFn         func(ctx context.Context, email, pass string) (string, *domain.Identity, error)
	logoutFn        func(ctx context.Context, token string) error
}

func (s *stubAuthService) RegisterShop(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) RegisterGuest(ctx context.Context, shopID, email, pass string) (*domain.GuestAccount, error) {
	return s.registerGuestFn(ctx, shopID, email, pass)
}

func (s *stubAuthService) LoginShop(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, pass)
}

func (s *stubAuthService) LoginAdmin(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, pass)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error) {
			if input.Email != "owner@example.com" || input.ShopName != "Corner Store" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.ShopAccount{ID: "uid-1", Email: input.Email, ShopName: input.ShopName, Status: domain.StatusPending}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"email":"owner@example.com","password":"Sup3r$ecret","shop_name":"Corner Store"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("expected pending status, got %v", resp["status"])
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"owner@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error) {
			return nil, &domain.ValidationError{Message: "Password must be at least 8 characters long"}
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"email":"owner@example.com","password":"short","shop_name":"Corner Store"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
			if email != "owner@example.com" || pass != "Sup3r$ecret" {
				t.Fatalf("unexpected args: %s %s", email, pass)
			}
			return "token123", &domain.Identity{ID: "uid-1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@example.com","password":"Sup3r$ecret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_Locked(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
			return "", nil, &domain.LockedError{RetryAfter: 12 * time.Minute}
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"owner@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)

	var locked *domain.LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected lock error, got %v", err)
	}
	if locked.RetryMinutes() != 12 {
		t.Fatalf("expected 12 minutes remaining, got %d", locked.RetryMinutes())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_RequiresBearer(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			t.Fatalf("should not be called")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	e := newTestEcho()
	var revoked string
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer token123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "token123" {
		t.Fatalf("expected token123 revoked, got %q", revoked)
	}
}

func TestAuthHandler_CheckPassword(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/password-check", strings.NewReader(`{"password":"Sup3r$ecretLongOne"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CheckPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["valid"] != true {
		t.Fatalf("expected a valid password, got %+v", resp)
	}
	if resp["score"].(float64) != 100 {
		t.Fatalf("expected full score, got %v", resp["score"])
	}
	if resp["label"] != "Very Strong" {
		t.Fatalf("unexpected label %v", resp["label"])
	}
}
