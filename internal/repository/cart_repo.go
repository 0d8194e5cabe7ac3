package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	return items, err
}

// AddOne increments the quantity of productID in the user's cart, creating
// the line with quantity 1 when it does not exist yet.
func (r *CartRepository) AddOne(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = domain.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}
		item.Quantity++
		return tx.Model(&item).Update("quantity", gorm.Expr("quantity + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity overwrites the quantity of an existing line.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}
