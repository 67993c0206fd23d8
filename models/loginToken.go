package models

import "time"

// LoginToken records every issued bearer token so logout can revoke it
// before it expires.
type LoginToken struct {
	ID             uint   `gorm:"primaryKey"`
	Token          string `gorm:"type:varchar(512);uniqueIndex;not null"`
	ExpirationTime time.Time
	UserID         uint `gorm:"index;not null"`
	Role           string
	CreatedAt      time.Time
}
