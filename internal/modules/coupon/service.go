package coupon

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type Store interface {
	GetActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error)
	GetActiveByCode(ctx context.Context, userID, code string) (*domain.Coupon, error)
	Deactivate(ctx context.Context, id string) error
}

type Service struct {
	coupons Store
	now     func() time.Time
	log     *slog.Logger
}

func NewService(coupons Store, log *slog.Logger) *Service {
	return &Service{coupons: coupons, now: time.Now, log: log}
}

// Active returns the user's active coupon, or nil when there is none.
func (s *Service) Active(ctx context.Context, userID string) (*domain.Coupon, error) {
	c, err := s.coupons.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Validate checks code against the user's active coupons. An expired coupon
// is deactivated on the way out.
func (s *Service) Validate(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	c, err := s.coupons.GetActiveByCode(ctx, userID, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	if c.IsExpired(s.now()) {
		if err := s.coupons.Deactivate(ctx, c.ID); err != nil {
			return nil, err
		}
		s.log.Info("coupon expired", "coupon_id", c.ID, "user_id", userID)
		return nil, ErrCouponExpired
	}
	return c, nil
}
