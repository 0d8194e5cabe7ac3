package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// RefreshTokenRepository keeps the single live refresh token per user in
// Redis under refresh_token:<userID>. Records expire with the token.
type RefreshTokenRepository struct {
	client redis.UniversalClient
}

func NewRefreshTokenRepository(client redis.UniversalClient) *RefreshTokenRepository {
	return &RefreshTokenRepository{client: client}
}

func (r *RefreshTokenRepository) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl must be positive, got %s", ttl)
	}
	return r.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err()
}

// Get returns the stored token, or "" when the user has none.
func (r *RefreshTokenRepository) Get(ctx context.Context, userID string) (string, error) {
	token, err := r.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return r.client.Del(ctx, refreshTokenKey(userID)).Err()
}

// DeleteAll removes every refresh record and reports how many were removed.
// Every user has to log in again afterwards.
func (r *RefreshTokenRepository) DeleteAll(ctx context.Context) (int64, error) {
	var removed int64
	iter := r.client.Scan(ctx, 0, refreshTokenKeyPrefix+"*", 500).Iterator()
	batch := make([]string, 0, 500)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		removed += n
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan: %w", err)
	}
	return removed, flush()
}

func refreshTokenKey(userID string) string {
	return refreshTokenKeyPrefix + userID
}
