package ports

import (
	"context"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// RegisterShopInput carries the registration form fields.
type RegisterShopInput struct {
	Email       string
	Password    string
	ShopName    string
	Address     string
	PhoneNumber string
}

// AuthService handles registration, login (with lockout), and sign-out.
type AuthService interface {
	RegisterShop(ctx context.Context, input RegisterShopInput) (*domain.ShopAccount, error)
	RegisterGuest(ctx context.Context, shopID, email, pass string) (*domain.GuestAccount, error)
	// LoginShop and LoginAdmin return a signed session token on success. The
	// two differ only in which account collection and lockout policy apply.
	LoginShop(ctx context.Context, email, pass string) (string, *domain.Identity, error)
	LoginAdmin(ctx context.Context, email, pass string) (string, *domain.Identity, error)
	// Logout revokes the given token until its natural expiry.
	Logout(ctx context.Context, token string) error
}

// SessionResolver turns an authenticated identity into a role, status and
// permission set. It never returns an error: lookup failures resolve to an
// unauthenticated session (fail closed).
type SessionResolver interface {
	Resolve(ctx context.Context, identity domain.Identity) domain.Session
}

// AuditTrail accepts audit events for asynchronous persistence.
type AuditTrail interface {
	Enqueue(event domain.AuditEvent)
}

// AdminService exposes the platform administration operations.
type AdminService interface {
	ListShops(ctx context.Context) ([]*domain.ShopAccount, error)
	SetShopStatus(ctx context.Context, actor, shopID string, status domain.AccountStatus) (*domain.ShopAccount, error)
}

// StaffService manages a shop's staff records.
type StaffService interface {
	Create(ctx context.Context, shopID string, input CreateStaffInput) (*domain.StaffRecord, error)
	List(ctx context.Context, shopID string) ([]*domain.StaffRecord, error)
	Update(ctx context.Context, shopID, id string, input UpdateStaffInput) (*domain.StaffRecord, error)
	Delete(ctx context.Context, shopID, id string) error
}

// CreateStaffInput carries the fields to enrol a staff member.
type CreateStaffInput struct {
	Name        string
	Email       string
	Password    string
	RoleLabel   string
	MonthlyPay  float64
	Permissions domain.PermissionSet
}

// UpdateStaffInput carries the mutable staff fields.
type UpdateStaffInput struct {
	Name        string
	RoleLabel   string
	MonthlyPay  float64
	Permissions domain.PermissionSet
}
