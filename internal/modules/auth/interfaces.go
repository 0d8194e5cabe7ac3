package auth

import (
	"context"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/session"
)

// UserDirectory is the part of the user repository the auth service uses.
type UserDirectory interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Sessions is the part of session.Manager the service drives.
type Sessions interface {
	Start(ctx context.Context, principalID string) (session.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (session.Pair, error)
	Revoke(ctx context.Context, refreshToken string)
}

// CookieWriter delivers and clears credential cookies.
type CookieWriter interface {
	Deliver(w http.ResponseWriter, pair session.Pair)
	Clear(w http.ResponseWriter)
}
