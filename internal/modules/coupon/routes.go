package coupon

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	coupons := protected.Group("/coupons")
	{
		coupons.GET("", h.GetCoupon)
		coupons.POST("/validate", h.ValidateCoupon)
	}
}
