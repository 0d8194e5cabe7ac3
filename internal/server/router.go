// Package server wires repositories, services and handlers into the gin engine.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storefront/internal/middleware"
	"storefront/internal/modules/auth"
	"storefront/internal/modules/cart"
	"storefront/internal/modules/catalog"
	"storefront/internal/modules/coupon"
	"storefront/internal/repository"
	"storefront/internal/session"
)

// Deps are the long-lived collaborators the router is built from.
type Deps struct {
	DB            *gorm.DB
	Sessions      *session.Manager
	FeaturedCache catalog.FeaturedCache
	Log           *slog.Logger

	// Development enables gin's access log and error details in 5xx bodies.
	Development    bool
	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	if d.Development {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger(d.Log, d.Development))
	r.Use(middleware.CORS(d.AllowedOrigins))

	userRepo := repository.NewUserRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	couponRepo := repository.NewCouponRepository(d.DB)

	authHandler := auth.NewHandler(
		auth.NewService(userRepo, d.Sessions, d.Log),
		d.Sessions,
		d.Log,
		d.Development,
	)
	catalogHandler := catalog.NewHandler(catalog.NewService(productRepo, d.FeaturedCache, d.Log), d.Log)
	cartHandler := cart.NewHandler(cart.NewService(cartRepo, productRepo), d.Log)
	couponHandler := coupon.NewHandler(coupon.NewService(couponRepo, d.Log), d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes
	authHandler.RegisterPublicRoutes(api)
	catalogHandler.RegisterPublicRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(d.Sessions, userRepo, d.Log))
	{
		authHandler.RegisterProtectedRoutes(protected)
		catalogHandler.RegisterProtectedRoutes(protected)
		cartHandler.RegisterProtectedRoutes(protected)
		couponHandler.RegisterProtectedRoutes(protected)

		adminGroup := protected.Group("")
		adminGroup.Use(middleware.AdminOnly())
		catalogHandler.RegisterAdminRoutes(adminGroup)
	}

	return r
}
