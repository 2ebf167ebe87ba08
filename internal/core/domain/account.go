package domain

import "time"

// AccountStatus represents the lifecycle state of a shop account.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusFrozen   AccountStatus = "frozen"
	StatusRejected AccountStatus = "rejected"
)

// Role classifies an authenticated principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
	RoleGuest Role = "guest"
	// RoleNone marks a session whose principal could not be resolved.
	// Guards treat it as unauthenticated.
	RoleNone Role = ""
)

// validStatusTransitions defines the admin-driven lifecycle of a shop account.
var validStatusTransitions = map[AccountStatus][]AccountStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusFrozen},
	StatusFrozen:   {StatusApproved},
	StatusRejected: {StatusApproved},
}

// CanTransitionTo reports whether an admin may move an account from s to next.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range validStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Identity is an authenticated principal issued by the credential store.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LockState carries the failed-login bookkeeping stored on an account record.
// LockedUntil records when the lock was applied; the lock expires LockDuration
// after that instant. The original documents store it this way, so reads stay
// compatible.
type LockState struct {
	FailedAttempts int
	LockedUntil    time.Time
	LockDuration   time.Duration
}

// Locked reports whether the account is still inside its lock window at now,
// and how long remains.
func (l LockState) Locked(now time.Time) (bool, time.Duration) {
	if l.LockedUntil.IsZero() || l.LockDuration <= 0 {
		return false, 0
	}
	expiry := l.LockedUntil.Add(l.LockDuration)
	if expiry.After(now) {
		return true, expiry.Sub(now)
	}
	return false, 0
}

// LockoutPolicy configures the lockout tracker. Admin logins use a stricter
// policy than shop logins.
type LockoutPolicy struct {
	Threshold    int
	LockDuration time.Duration
}

// ShopAccount is the persisted profile of a registered shop owner, keyed by
// the owner's identity id.
type ShopAccount struct {
	ID             string        `json:"id"`
	Email          string        `json:"email"`
	ShopName       string        `json:"shop_name"`
	Address        string        `json:"address,omitempty"`
	PhoneNumber    string        `json:"phone_number,omitempty"`
	Status         AccountStatus `json:"status"`
	FailedAttempts int           `json:"-"`
	LockedUntil    time.Time     `json:"-"`
	LockDuration   time.Duration `json:"-"`
	LastLoginAt    time.Time     `json:"last_login_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// AdminAccount is the persisted profile of a platform administrator.
type AdminAccount struct {
	ID             string        `json:"id"`
	Email          string        `json:"email"`
	Name           string        `json:"name,omitempty"`
	FailedAttempts int           `json:"-"`
	LockedUntil    time.Time     `json:"-"`
	LockDuration   time.Duration `json:"-"`
	LastLoginAt    time.Time     `json:"last_login_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// GuestAccount marks an identity as a guest login for a shop. Guests can only
// create receipts.
type GuestAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ShopID    string    `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the per-request resolution of an identity into a role, account
// status and capability set. It is derived fresh on every request and never
// persisted.
type Session struct {
	Identity    Identity      `json:"identity"`
	Role        Role          `json:"role"`
	Status      AccountStatus `json:"status,omitempty"`
	Permissions PermissionSet `json:"permissions"`
	ShopID      string        `json:"shop_id,omitempty"`
}

// Authenticated reports whether the session resolved to a known principal.
func (s Session) Authenticated() bool {
	return s.Role != RoleNone
}
