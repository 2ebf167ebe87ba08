package ports

import (
	"context"
	"time"

	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
)

// CredentialStore abstracts the hosted authentication service. SignIn fails
// with domain.ErrInvalidCredentials for both a wrong password and an unknown
// email; any other error is an adapter failure.
type CredentialStore interface {
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignUp(ctx context.Context, email, password string) (*domain.Identity, error)
}

// TokenRevoker is the sign-out denylist. Revoked token ids stay listed until
// the token would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
