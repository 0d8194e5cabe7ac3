package main

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/domain"
	"storefront/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.IsDevelopment())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("DB connection failed", "error", err)
		os.Exit(1)
	}

	log.Info("running migrations")
	if err := database.Migrate(db); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	if err := seed(db, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete")
}

func seed(db *gorm.DB, log *slog.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Cleanup old data (cart lines first, they reference products and users)
		for _, model := range []interface{}{&domain.CartItem{}, &domain.Coupon{}, &domain.Product{}, &domain.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		// ================== USERS ==================
		admin, err := newUser("Admin", "admin@storefront.local", "admin123", domain.RoleAdmin)
		if err != nil {
			return err
		}
		customer, err := newUser("Demo Customer", "customer@storefront.local", "customer123", domain.RoleCustomer)
		if err != nil {
			return err
		}
		if err := tx.Create([]*domain.User{admin, customer}).Error; err != nil {
			return err
		}
		log.Info("users created", "admin", admin.Email, "customer", customer.Email)

		// ================== PRODUCTS ==================
		products := []domain.Product{
			{Name: "Classic Denim Jacket", Description: "Stonewashed denim with brass buttons", Price: 89.99, Category: "jackets", IsFeatured: true},
			{Name: "Leather Biker Jacket", Description: "Full-grain leather, quilted lining", Price: 249.00, Category: "jackets"},
			{Name: "Cotton Crew Tee", Description: "Heavyweight organic cotton", Price: 24.50, Category: "t-shirts", IsFeatured: true},
			{Name: "Graphic Tee", Description: "Screen-printed front graphic", Price: 29.00, Category: "t-shirts"},
			{Name: "Slim Chinos", Description: "Stretch twill, tapered leg", Price: 59.00, Category: "jeans"},
			{Name: "Canvas Sneakers", Description: "Vulcanised rubber sole", Price: 64.00, Category: "shoes", IsFeatured: true},
			{Name: "Aviator Sunglasses", Description: "Polarised lenses, metal frame", Price: 120.00, Category: "glasses"},
			{Name: "Wool Suit", Description: "Two-piece, half-canvas construction", Price: 399.00, Category: "suits"},
			{Name: "Weekender Bag", Description: "Waxed canvas with leather trim", Price: 149.00, Category: "bags"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
			return err
		}
		log.Info("products created", "count", len(products))

		// ================== COUPONS ==================
		coupon := domain.Coupon{
			Code:               "WELCOME10",
			DiscountPercentage: 10,
			ExpirationDate:     time.Now().AddDate(0, 1, 0),
			IsActive:           true,
			UserID:             customer.ID,
		}
		if err := tx.Create(&coupon).Error; err != nil {
			return err
		}
		log.Info("coupon created", "code", coupon.Code, "user", customer.Email)
		return nil
	})
}

func newUser(name, email, password string, role domain.UserRole) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &domain.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}, nil
}
