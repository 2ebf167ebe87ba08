package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/password"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// AuthService implements registration, login with lockout tracking, and
// sign-out via token revocation.
type AuthService struct {
	creds        ports.CredentialStore
	shops        ports.ShopRepository
	admins       ports.AdminRepository
	guests       ports.GuestRepository
	revoker      ports.TokenRevoker
	audit        ports.AuditTrail
	shopLockout  *Lockout
	adminLockout *Lockout
	jwtSecret    string
	tokenTTL     time.Duration
	log          zerolog.Logger
}

// AuthConfig wires the auth service dependencies.
type AuthConfig struct {
	Credentials ports.CredentialStore
	Shops       ports.ShopRepository
	Admins      ports.AdminRepository
	Guests      ports.GuestRepository
	Revoker     ports.TokenRevoker
	Audit       ports.AuditTrail
	ShopPolicy  domain.LockoutPolicy
	AdminPolicy domain.LockoutPolicy
	JWTSecret   string
	TokenTTL    time.Duration
}

func NewAuthService(cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		creds:        cfg.Credentials,
		shops:        cfg.Shops,
		admins:       cfg.Admins,
		guests:       cfg.Guests,
		revoker:      cfg.Revoker,
		audit:        cfg.Audit,
		shopLockout:  NewLockout(cfg.Shops, cfg.ShopPolicy, log),
		adminLockout: NewLockout(cfg.Admins, cfg.AdminPolicy, log),
		jwtSecret:    cfg.JWTSecret,
		tokenTTL:     cfg.TokenTTL,
		log:          log,
	}
}

// RegisterShop creates a credential and a shop account with status pending.
// The account stays unusable until an administrator approves it.
func (s *AuthService) RegisterShop(ctx context.Context, input ports.RegisterShopInput) (*domain.ShopAccount, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.ShopName == "" {
		return nil, &domain.ValidationError{Message: "email and shop name are required"}
	}
	if res := password.Validate(input.Password); !res.Valid {
		return nil, &domain.ValidationError{Message: res.Message}
	}

	identity, err := s.creds.SignUp(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shop := &domain.ShopAccount{
		ID:          identity.ID,
		Email:       email,
		ShopName:    input.ShopName,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.shops.Create(ctx, shop)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("shop_id", created.ID).Str("shop_name", created.ShopName).Msg("shop registered, pending approval")
	return created, nil
}

// RegisterGuest creates a receipt-only guest login under a shop.
func (s *AuthService) RegisterGuest(ctx context.Context, shopID, email, pass string) (*domain.GuestAccount, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &domain.ValidationError{Message: "email is required"}
	}
	if res := password.Validate(pass); !res.Valid {
		return nil, &domain.ValidationError{Message: res.Message}
	}

	identity, err := s.creds.SignUp(ctx, email, pass)
	if err != nil {
		return nil, err
	}

	guest := &domain.GuestAccount{
		ID:        identity.ID,
		Email:     email,
		ShopID:    shopID,
		CreatedAt: time.Now().UTC(),
	}
	return s.guests.Create(ctx, guest)
}

// LoginShop authenticates a shop owner, staff member or guest under the shop
// lockout policy.
func (s *AuthService) LoginShop(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
	return s.login(ctx, email, pass, s.shopLockout)
}

// LoginAdmin authenticates a platform administrator under the stricter admin
// lockout policy.
func (s *AuthService) LoginAdmin(ctx context.Context, email, pass string) (string, *domain.Identity, error) {
	return s.login(ctx, email, pass, s.adminLockout)
}

func (s *AuthService) login(ctx context.Context, email, pass string, tracker *Lockout) (string, *domain.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	// A locked account is rejected before the credential store is contacted.
	if err := tracker.Check(ctx, email); err != nil {
		var locked *domain.LockedError
		if errors.As(err, &locked) {
			s.record(domain.AuditLoginFailed, email, "rejected while locked")
			return "", nil, err
		}
		return "", nil, fmt.Errorf("lockout check: %w", err)
	}

	identity, err := s.creds.SignIn(ctx, email, pass)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			failure := tracker.OnFailure(ctx, email)
			var locked *domain.LockedError
			if errors.As(failure, &locked) {
				s.record(domain.AuditAccountLocked, email, failure.Error())
			} else {
				s.record(domain.AuditLoginFailed, email, "bad credentials")
			}
			return "", nil, failure
		}
		// Adapter failure: surface generically, leave the counter untouched.
		s.log.Error().Err(err).Msg("credential store sign-in failed")
		return "", nil, fmt.Errorf("sign in: %w", err)
	}

	tracker.OnSuccess(ctx, email)
	s.record(domain.AuditLoginSuccess, email, "")

	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// Logout places the token on the revocation list until it would expire.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidCredentials
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return domain.ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, ttl)
}

func (s *AuthService) issueToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"jti":   newTokenID(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) record(kind domain.AuditEventType, email, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Type:      kind,
		Email:     email,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
