package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one product line in a user's cart. A user has at most one line
// per product; adding the same product again bumps Quantity.
type CartItem struct {
	ID        string    `json:"-" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"-" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	ProductID string    `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (i *CartItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}
