package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID                 string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Code               string    `json:"code" gorm:"index;not null"`
	DiscountPercentage int       `json:"discountPercentage" gorm:"not null"`
	ExpirationDate     time.Time `json:"expirationDate" gorm:"not null"`
	IsActive           bool      `json:"isActive" gorm:"not null"`
	UserID             string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.ExpirationDate)
}
