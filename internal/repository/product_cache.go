package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const featuredProductsKey = "featured_products"

// ProductCache stores the featured product list as JSON in Redis.
type ProductCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewProductCache returns a cache whose entries live for ttl; zero means no expiry.
func NewProductCache(client redis.UniversalClient, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

// GetFeatured reports ok=false on a cache miss.
func (c *ProductCache) GetFeatured(ctx context.Context) ([]domain.Product, bool, error) {
	data, err := c.client.Get(ctx, featuredProductsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("unmarshal featured products: %w", err)
	}
	return products, true, nil
}

func (c *ProductCache) SetFeatured(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal featured products: %w", err)
	}
	return c.client.Set(ctx, featuredProductsKey, data, c.ttl).Err()
}
