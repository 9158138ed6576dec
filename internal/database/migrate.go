package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// RunMigrations creates or updates the kv_entries and recipes tables.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KVEntry{}, &models.RecipeRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
