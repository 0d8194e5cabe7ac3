package cart

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	cartGroup := protected.Group("/cart")
	{
		cartGroup.GET("", h.GetCart)
		cartGroup.POST("", h.AddToCart)
		cartGroup.DELETE("", h.RemoveFromCart)
		cartGroup.PUT("/:id", h.UpdateQuantity)
	}
}
