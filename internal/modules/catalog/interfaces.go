package catalog

import (
	"context"

	"storefront/internal/domain"
)

// ProductStore is the product persistence the catalog needs.
type ProductStore interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Sample(ctx context.Context, n int) ([]domain.Product, error)
	ToggleFeatured(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// FeaturedCache holds the featured product list.
type FeaturedCache interface {
	GetFeatured(ctx context.Context) ([]domain.Product, bool, error)
	SetFeatured(ctx context.Context, products []domain.Product) error
}
