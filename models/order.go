package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uint            `gorm:"primaryKey"`
	CustomerID   uint            `gorm:"index;not null"`
	Customer     User            `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	RestaurantID uint            `gorm:"index;not null"`
	Restaurant   Restaurant      `gorm:"foreignKey:RestaurantID;constraint:OnDelete:RESTRICT"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	OrderStatus  OrderStatus     `gorm:"type:varchar(32);not null"`
	IsDeleted    bool            `gorm:"not null;default:false;index"`
	OrderItems   []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
