package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("/featured", h.GetFeaturedProducts)
		products.GET("/category/:category", h.GetProductsByCategory)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/products/recommendations", h.GetRecommendedProducts)
}

// RegisterAdminRoutes expects a group that already enforces the admin role.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	products := admin.Group("/products")
	{
		products.GET("", h.GetAllProducts)
		products.POST("", h.CreateProduct)
		products.PATCH("/:id", h.ToggleFeaturedProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}
