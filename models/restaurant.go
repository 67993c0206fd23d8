package models

import "time"

type Restaurant struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Rating      float64    `gorm:"not null" json:"rating"`
	Address     string     `json:"address"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	MenuItems   []MenuItem `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"menuItems"`
	Reviews     []Review   `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
