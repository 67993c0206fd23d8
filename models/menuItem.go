package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	RestaurantID uint            `gorm:"index;not null" json:"restaurantId"`
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	IsDeleted    bool            `gorm:"not null;default:false;index" json:"isDeleted"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
