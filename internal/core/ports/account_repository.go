package ports

import (
	"context"
	"time"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// LockoutStore is the failed-login bookkeeping surface an account collection
// must expose to the lockout tracker. Emails are matched case-insensitively.
type LockoutStore interface {
	// LockState returns the current bookkeeping for the account, or
	// domain.ErrAccountNotFound when no record exists.
	LockState(ctx context.Context, email string) (*domain.LockState, error)
	// RecordFailedAttempt atomically increments the counter and returns the
	// new value.
	RecordFailedAttempt(ctx context.Context, email string, at time.Time) (int, error)
	// Lock stamps the account locked as of `at` for the given duration.
	Lock(ctx context.Context, email string, at time.Time, duration time.Duration) error
	// ClearFailures resets the counter and records the successful login time.
	ClearFailures(ctx context.Context, email string, at time.Time) error
}

// ShopRepository persists shop account records.
type ShopRepository interface {
	LockoutStore
	Create(ctx context.Context, shop *domain.ShopAccount) (*domain.ShopAccount, error)
	FindByID(ctx context.Context, id string) (*domain.ShopAccount, error)
	FindByEmail(ctx context.Context, email string) (*domain.ShopAccount, error)
	List(ctx context.Context) ([]*domain.ShopAccount, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus) error
}

// AdminRepository persists platform administrator records.
type AdminRepository interface {
	LockoutStore
	FindByID(ctx context.Context, id string) (*domain.AdminAccount, error)
	FindByEmail(ctx context.Context, email string) (*domain.AdminAccount, error)
}

// StaffRepository persists staff records under a shop.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffRecord) (*domain.StaffRecord, error)
	FindByID(ctx context.Context, shopID, id string) (*domain.StaffRecord, error)
	FindByIdentity(ctx context.Context, identityID string) (*domain.StaffRecord, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.StaffRecord, error)
	Update(ctx context.Context, staff *domain.StaffRecord) error
	Delete(ctx context.Context, shopID, id string) error
}

// GuestRepository persists guest login markers.
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.GuestAccount) (*domain.GuestAccount, error)
	FindByIdentity(ctx context.Context, identityID string) (*domain.GuestAccount, error)
}
