package database

import (
	"fmt"

	"github.com/vendora/supplierctl/internal/models"
	"gorm.io/gorm"
)

// Bootstrap creates or updates the toolkit's schema. AutoMigrate is
// idempotent: existing tables gain missing columns, nothing is dropped.
func Bootstrap(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Supplier{}); err != nil {
		return fmt.Errorf("schema bootstrap failed: %w", err)
	}
	return nil
}
