package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
)

// Lockout tracks failed login attempts per account and enforces temporary
// locks. Threshold and duration come from configuration so admin and shop
// logins can run different policies on the same implementation.
type Lockout struct {
	store  ports.LockoutStore
	policy domain.LockoutPolicy
	log    zerolog.Logger
	now    func() time.Time
}

func NewLockout(store ports.LockoutStore, policy domain.LockoutPolicy, log zerolog.Logger) *Lockout {
	return &Lockout{store: store, policy: policy, log: log, now: time.Now}
}

// Check rejects the attempt while the account is inside its lock window. It
// runs before any credential check so a locked account never reaches the
// credential store. Unknown emails pass: their existence must not be
// revealed, and the credential check will fail generically.
func (l *Lockout) Check(ctx context.Context, email string) error {
	state, err := l.store.LockState(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		l.log.Error().Err(err).Msg("lockout state lookup failed")
		return err
	}

	if locked, remaining := state.Locked(l.now()); locked {
		return &domain.LockedError{RetryAfter: remaining}
	}
	return nil
}

// OnSuccess resets the failed-attempt counter and stamps the login time.
func (l *Lockout) OnSuccess(ctx context.Context, email string) {
	if err := l.store.ClearFailures(ctx, email, l.now()); err != nil {
		// The login itself succeeded; a failed reset only risks an
		// over-counted attempt later.
		l.log.Error().Err(err).Str("email", email).Msg("failed to reset login attempts")
	}
}

// OnFailure records a bad-credential attempt. It returns the error to surface
// to the caller: a LockedError when this attempt tripped the threshold, an
// AttemptsError otherwise. Unknown accounts mutate nothing and get the
// generic credential error.
func (l *Lockout) OnFailure(ctx context.Context, email string) error {
	attempts, err := l.store.RecordFailedAttempt(ctx, email, l.now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInvalidCredentials
		}
		l.log.Error().Err(err).Str("email", email).Msg("failed to record login attempt")
		return domain.ErrInvalidCredentials
	}

	if attempts >= l.policy.Threshold {
		if err := l.store.Lock(ctx, email, l.now(), l.policy.LockDuration); err != nil {
			l.log.Error().Err(err).Str("email", email).Msg("failed to lock account")
			return domain.ErrInvalidCredentials
		}
		return &domain.LockedError{RetryAfter: l.policy.LockDuration, JustLocked: true}
	}

	return &domain.AttemptsError{Remaining: l.policy.Threshold - attempts}
}
