package database

import (
	"depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all persisted collections.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.Property{},
		&models.Report{},
		&models.SharedReport{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates the secondary-lookup indexes GORM tags don't cover:
// reports by owning property and shared reports by expiry (cleanup sweeps).
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_reports_property_generated ON reports(property_id, generated_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_shared_reports_expires_at ON shared_reports(expires_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	return nil
}
