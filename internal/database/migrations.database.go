package database

import (
	"savvy/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// ModelsToMigrate lists the tables the seed source reads from.
var ModelsToMigrate = []any{
	&models.Cleaner{},
	&models.Job{},
}

func AutoMigrate(db *gorm.DB) error {
	log := logger.New("database").Function("AutoMigrate")
	log.Info("Starting database migration")

	if err := db.AutoMigrate(ModelsToMigrate...); err != nil {
		return log.Err("failed to migrate models", err)
	}

	log.Info("Database migration completed successfully")
	return nil
}
