package cart

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Service manages the per-user cart. Lines are keyed by product id; every
// mutation returns the cart as it stands afterwards.
type Service struct {
	items    ItemStore
	products ProductLookup
}

func NewService(items ItemStore, products ProductLookup) *Service {
	return &Service{items: items, products: products}
}

// Get returns the user's cart lines joined with their products. Lines whose
// product no longer exists are left out.
func (s *Service) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.CartLine{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, domain.CartLine{Product: p, Quantity: it.Quantity})
	}
	return lines, nil
}

func (s *Service) Add(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	productID = strings.TrimSpace(productID)
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.items.AddOne(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Remove drops one product from the cart, or empties the cart when
// productID is empty. Removing a product that is not in the cart is a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		if err := s.items.Clear(ctx, userID); err != nil {
			return nil, err
		}
		return []domain.CartLine{}, nil
	}

	if err := s.items.Remove(ctx, userID, productID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// UpdateQuantity sets the quantity of a line; zero removes it.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var err error
	if quantity == 0 {
		err = s.items.Remove(ctx, userID, productID)
	} else {
		err = s.items.SetQuantity(ctx, userID, productID, quantity)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}
