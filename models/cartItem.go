package models

import "time"

type CartItem struct {
	ID         uint     `gorm:"primaryKey"`
	CartID     uint     `gorm:"uniqueIndex:idx_cart_menu_item;not null"`
	MenuItemID uint     `gorm:"uniqueIndex:idx_cart_menu_item;not null"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
	Quantity   int      `gorm:"not null"`
	// Present in the schema, never set by the cart flows.
	IsDeleted bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
