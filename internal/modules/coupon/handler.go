package coupon

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

// GetCoupon handles GET /api/coupons
func (h *Handler) GetCoupon(c *gin.Context) {
	coupon, err := h.service.Active(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"coupon": coupon})
}

// ValidateCoupon handles POST /api/coupons/validate
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "code is required", errs)
		return
	}

	coupon, err := h.service.Validate(c.Request.Context(), c.GetString("user_id"), req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ValidateResponse{
		Message:            "Coupon is valid",
		Code:               coupon.Code,
		DiscountPercentage: coupon.DiscountPercentage,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCouponNotFound):
		response.Error(c, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon not found")
	case errors.Is(err, ErrCouponExpired):
		response.Error(c, http.StatusNotFound, "COUPON_EXPIRED", "Coupon has expired")
	default:
		h.log.Error("coupon request failed", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
