package catalog

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrNoFeaturedProducts = errors.New("no featured products found")
)
