package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/pkg/jwt"
)

var (
	ErrInvalidToken   = errors.New("invalid session token")
	ErrStoreFailure   = errors.New("session store unavailable")
	ErrEmptyPrincipal = errors.New("principal id is empty")
)

// Store holds at most one refresh token per principal.
// Get returns "" and a nil error when no record exists.
type Store interface {
	Save(ctx context.Context, principalID, token string, ttl time.Duration) error
	Get(ctx context.Context, principalID string) (string, error)
	Delete(ctx context.Context, principalID string) error
}

// Signer issues and checks one kind of token.
type Signer interface {
	GenerateToken(userID string) (string, time.Time, error)
	ValidateToken(token string) (*jwt.Claims, error)
	ParseIgnoringExpiry(token string) (*jwt.Claims, error)
	TTL() time.Duration
}

// Pair is the credential pair handed to a client after login, signup or refresh.
type Pair struct {
	PrincipalID      string
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Manager owns the access/refresh credential lifecycle. It keeps no state of
// its own; the refresh record lives in Store.
type Manager struct {
	access  Signer
	refresh Signer
	store   Store
	cookies CookieOptions
	log     *slog.Logger
}

func NewManager(access, refresh Signer, store Store, cookies CookieOptions, log *slog.Logger) *Manager {
	return &Manager{
		access:  access,
		refresh: refresh,
		store:   store,
		cookies: cookies,
		log:     log,
	}
}

// Issue signs a fresh access/refresh pair. It does not touch the store.
func (m *Manager) Issue(principalID string) (Pair, error) {
	if strings.TrimSpace(principalID) == "" {
		return Pair{}, ErrEmptyPrincipal
	}

	accessToken, accessExp, err := m.access.GenerateToken(principalID)
	if err != nil {
		return Pair{}, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, refreshExp, err := m.refresh.GenerateToken(principalID)
	if err != nil {
		return Pair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return Pair{
		PrincipalID:      principalID,
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Persist records refreshToken as the only valid refresh token for
// principalID, replacing any earlier one.
func (m *Manager) Persist(ctx context.Context, principalID, refreshToken string) error {
	if err := m.store.Save(ctx, principalID, refreshToken, m.refresh.TTL()); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	return nil
}

// Start is Issue followed by Persist.
func (m *Manager) Start(ctx context.Context, principalID string) (Pair, error) {
	pair, err := m.Issue(principalID)
	if err != nil {
		return Pair{}, err
	}
	if err := m.Persist(ctx, principalID, pair.RefreshToken); err != nil {
		return Pair{}, err
	}
	return pair, nil
}

// Verify authorizes an access token from signature and expiry alone.
func (m *Manager) Verify(accessToken string) (string, error) {
	claims, err := m.access.ValidateToken(accessToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims.UserID, nil
}

// Refresh rotates both tokens. The refresh token must verify, be unexpired and
// match the stored record byte for byte.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (Pair, error) {
	claims, err := m.refresh.ValidateToken(refreshToken)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	stored, err := m.store.Get(ctx, claims.UserID)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		m.log.Warn("refresh token does not match stored record", "user_id", claims.UserID)
		return Pair{}, ErrInvalidToken
	}

	return m.Start(ctx, claims.UserID)
}

// Revoke deletes the refresh record named by refreshToken. It never fails from
// the caller's point of view: empty or unparseable tokens are skipped, store
// errors are logged.
func (m *Manager) Revoke(ctx context.Context, refreshToken string) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return
	}

	claims, err := m.refresh.ParseIgnoringExpiry(refreshToken)
	if err != nil {
		m.log.Warn("skipping revoke of unparseable refresh token", "error", err)
		return
	}

	if err := m.store.Delete(ctx, claims.UserID); err != nil {
		m.log.Error("failed to delete refresh record", "user_id", claims.UserID, "error", err)
		return
	}
	m.log.Info("refresh record removed", "user_id", claims.UserID)
}
