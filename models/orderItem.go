package models

import "github.com/shopspring/decimal"

// OrderItem.Price is quantity x unit price captured when the order was
// placed. It is never recomputed from the catalog.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"index;not null"`
	MenuItemID uint            `gorm:"index;not null"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
	Quantity   int             `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IsDeleted  bool            `gorm:"not null;default:false"`
}
