package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &Category{}, &Product{}, &Review{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
