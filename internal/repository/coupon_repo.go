package repository

import (
	"context"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CouponRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CouponRepository) GetActiveByCode(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND user_id = ? AND is_active = ?", code, userID, true).
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Coupon{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
