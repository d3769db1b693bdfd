package db

import (
	"fmt"
	"log"

	"casepilot/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared handle handlers and services query through.
var DB *gorm.DB

// Open connects to the sqlite database at dbPath. WAL mode lets dashboard
// reads run alongside writes, and the busy timeout covers brief lock
// contention from the hourly notification cleanup.
func Open(dbPath, environment string) error {
	logLevel := logger.Warn
	if environment != "production" {
		logLevel = logger.Info
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}

	log.Printf("Database ready at %s (WAL)", dbPath)
	return nil
}

// Migrate creates or updates the schema for every table the API serves.
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not opened")
	}

	if err := DB.AutoMigrate(
		&models.Client{},
		&models.Case{},
		&models.Document{},
		&models.Task{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
