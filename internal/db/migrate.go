package db

import (
	"fmt"
	"log"

	"go_assetdb/internal/model"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	log.Println("Starting database migration...")

	// List of all models to migrate
	models := []interface{}{
		&model.User{},
		&model.ProjectCode{},
		&model.LocationDesc{},
		&model.DetailsLocation{},
		&model.Asset{},
		&model.Inspection{},
		&model.InspectionItem{},
		&model.AssetAudit{},
		&model.AuditUser{},
		&model.WSEvent{},
	}

	// Run AutoMigrate for all models
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("✓ Database migration completed successfully (%d tables)", len(models))
	return nil
}
