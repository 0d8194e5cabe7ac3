package repository

import (
	"context"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	products := []domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Where("is_featured = ?", true).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("created_at DESC").Find(&products).Error
	return products, err
}

// Sample returns up to n products in random order.
func (r *ProductRepository) Sample(ctx context.Context, n int) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&products).Error
	return products, err
}

// ToggleFeatured flips is_featured and returns the updated product.
func (r *ProductRepository) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return notFound(err)
		}
		p.IsFeatured = !p.IsFeatured
		return tx.Model(&p).Update("is_featured", p.IsFeatured).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product and any cart lines that reference it.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("product_id = ?", id).Delete(&domain.CartItem{}).Error
	})
}
