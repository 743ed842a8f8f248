package database

import (
	"fmt"

	"github.com/pagecanvas/canvas-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection used for creation history
func Connect(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Migrate runs schema migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Creation{},
	)
}
