package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const recommendationCount = 3

// Service serves the product catalog. The featured list is read through
// the cache; a cache that errors is logged and bypassed.
type Service struct {
	products ProductStore
	cache    FeaturedCache
	log      *slog.Logger
}

func NewService(products ProductStore, cache FeaturedCache, log *slog.Logger) *Service {
	return &Service{products: products, cache: cache, log: log}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	cached, ok, err := s.cache.GetFeatured(ctx)
	if err != nil {
		s.log.Warn("featured cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	products, err := s.products.ListFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoFeaturedProducts
	}

	if err := s.cache.SetFeatured(ctx, products); err != nil {
		s.log.Warn("featured cache write failed", "error", err)
	}
	return products, nil
}

func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, strings.TrimSpace(category))
}

func (s *Service) Recommendations(ctx context.Context) ([]domain.Product, error) {
	return s.products.Sample(ctx, recommendationCount)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Image:       strings.TrimSpace(req.Image),
		Category:    strings.TrimSpace(req.Category),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", "product_id", p.ID)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	if p.IsFeatured {
		s.refreshFeaturedCache(ctx)
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

func (s *Service) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.ToggleFeatured(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	s.refreshFeaturedCache(ctx)
	return p, nil
}

// refreshFeaturedCache rewrites the cached featured list from the database.
func (s *Service) refreshFeaturedCache(ctx context.Context) {
	products, err := s.products.ListFeatured(ctx)
	if err != nil {
		s.log.Warn("featured cache refresh: list failed", "error", err)
		return
	}
	if err := s.cache.SetFeatured(ctx, products); err != nil {
		s.log.Warn("featured cache refresh: write failed", "error", err)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
