package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials is the generic bad-credential error. It never
	// distinguishes a wrong password from an unknown account.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailExists       = errors.New("an account with this email already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrStockItemNotFound = errors.New("stock item not found")
	ErrReceiptNotFound   = errors.New("receipt not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrCategoryNotFound  = errors.New("expense category not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvalidStatus     = errors.New("invalid account status transition")
)

// LockedError rejects a login attempt while the account is inside its lock
// window. JustLocked marks the attempt that tripped the threshold, which gets
// a different user-facing message than later attempts against an existing
// lock.
type LockedError struct {
	RetryAfter time.Duration
	JustLocked bool
}

// RetryMinutes is the user-facing remaining time, rounded up to whole minutes
// and never below 1.
func (e *LockedError) RetryMinutes() int {
	m := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if m < 1 {
		m = 1
	}
	return m
}

func (e *LockedError) Error() string {
	if e.JustLocked {
		return fmt.Sprintf("too many failed login attempts, account locked for %d minute(s)", e.RetryMinutes())
	}
	return fmt.Sprintf("account is temporarily locked, try again in %d minute(s)", e.RetryMinutes())
}

// AttemptsError is a bad-credential failure on a known account that is not
// yet locked. It unwraps to ErrInvalidCredentials so callers matching the
// generic error still catch it.
type AttemptsError struct {
	Remaining int
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("invalid email or password, %d attempt(s) remaining before account is locked", e.Remaining)
}

func (e *AttemptsError) Unwrap() error { return ErrInvalidCredentials }

// ValidationError carries an inline form-level message, e.g. from the
// password policy.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
