package database

import (
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// Migrate creates or updates the schema for every entity. SQLite (used by the
// unit tests) and Postgres both go through GORM auto-migration; the unique
// indexes on slug and (user_id, restaurant_id) are part of the model tags, so
// both dialects enforce them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.MenuItem{},
		&models.Assignment{},
	)
}
