package models

import "time"

type Review struct {
	ID            uint   `gorm:"primaryKey"`
	RestaurantID  uint   `gorm:"index;not null"`
	CustomerID    uint   `gorm:"index;not null"`
	Customer      User   `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	Comment       string `gorm:"type:text;not null"`
	CommentedDate time.Time
}
