package models

import "time"

const (
	RoleCustomer = "Customer"
	RoleAdmin    = "Admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	Address      string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(16);not null"`
	IsDeleted    bool   `gorm:"not null;default:false;index"`
	LoginTokens  []LoginToken
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
