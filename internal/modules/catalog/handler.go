package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/response"
	"storefront/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// GetAllProducts handles GET /api/products (admin)
func (h *Handler) GetAllProducts(c *gin.Context) {
	products, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GetFeaturedProducts handles GET /api/products/featured
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	products, err := h.service.Featured(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GetProductsByCategory handles GET /api/products/category/:category
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	products, err := h.service.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// GetRecommendedProducts handles GET /api/products/recommendations
func (h *Handler) GetRecommendedProducts(c *gin.Context) {
	products, err := h.service.Recommendations(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

// CreateProduct handles POST /api/products (admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid product", errs)
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id (admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ToggleFeaturedProduct handles PATCH /api/products/:id (admin)
func (h *Handler) ToggleFeaturedProduct(c *gin.Context) {
	product, err := h.service.ToggleFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrNoFeaturedProducts):
		response.Error(c, http.StatusNotFound, "NO_FEATURED_PRODUCTS", "No featured products found")
	default:
		h.log.Error("catalog request failed", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
