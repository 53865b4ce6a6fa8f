package bootstrap

import (
	"fmt"

	"healthagentapi/models"
	"healthagentapi/pkg/logger"

	"gorm.io/gorm"
)

// Migrate creates the policies table and its unique pan_number index when they do not exist.
func Migrate(db *gorm.DB) error {
	logger.Infof("Starting schema migration...")

	if err := db.AutoMigrate(&models.Policy{}); err != nil {
		logger.Errorf("Failed to migrate policies table: %v", err)
		return fmt.Errorf("failed to migrate policies table: %w", err)
	}

	logger.Infof("policies table ready")
	return nil
}
