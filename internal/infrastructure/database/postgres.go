package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/authsvc/internal/infrastructure/repositories"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := db.AutoMigrate(&repositories.DBOneTimeCode{}); err != nil {
		return fmt.Errorf("failed to migrate otps table: %w", err)
	}
	return nil
}
