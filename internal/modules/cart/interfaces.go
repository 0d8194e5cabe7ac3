package cart

import (
	"context"

	"storefront/internal/domain"
)

type ItemStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddOne(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}
