package models

import "gorm.io/gorm"

// NotDeleted hides soft-deleted rows. Usable with Scopes and as a Preload condition.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
