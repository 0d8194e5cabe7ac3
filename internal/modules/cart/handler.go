package cart

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

// GetCart handles GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	lines, err := h.service.Get(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": lines})
}

// AddToCart handles POST /api/cart
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "productId is required", errs)
		return
	}

	lines, err := h.service.Add(c.Request.Context(), c.GetString("user_id"), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": lines})
}

// RemoveFromCart handles DELETE /api/cart. An empty body clears the cart.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req RemoveItemRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
			return
		}
	}

	lines, err := h.service.Remove(c.Request.Context(), c.GetString("user_id"), req.ProductID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": lines})
}

// UpdateQuantity handles PUT /api/cart/:id
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "quantity must be a non-negative integer", errs)
		return
	}

	lines, err := h.service.UpdateQuantity(c.Request.Context(), c.GetString("user_id"), c.Param("id"), *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": lines})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Product not found in cart")
	case errors.Is(err, ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "quantity must be a non-negative integer")
	default:
		h.log.Error("cart request failed", "path", c.Request.URL.Path, "user_id", c.GetString("user_id"), "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
