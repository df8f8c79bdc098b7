package main

import (
	"os"

	"depositdefender/config"
	"depositdefender/internal/database"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Standalone migration entry point. The API server migrates on boot; this
// binary exists for provisioning a database ahead of time and for seeding a
// demo property.
func main() {
	log := logger.New("migrations").Function("main")

	config, err := config.New()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		err = migrateUp(db, log)
	case "seed":
		if err = migrateUp(db, log); err == nil {
			err = seedDemoProperty(db, log)
		}
	default:
		log.Warn("Unknown migration command", "command", command)
		os.Exit(1)
	}

	if err != nil {
		log.Er("migration failed", err, "command", command)
		os.Exit(1)
	}

	log.Info("Migration complete", "command", command)
}

func migrateUp(db database.DB, log logger.Logger) error {
	if err := db.MigrateModels(); err != nil {
		return log.Err("failed to migrate models", err)
	}

	if err := db.CreateIndexes(); err != nil {
		return log.Err("failed to create indexes", err)
	}

	return nil
}

// seedDemoProperty provisions a small inspection to explore the app with.
// Skipped when any property already exists.
func seedDemoProperty(db database.DB, log logger.Logger) error {
	var count int64
	if err := db.SQL.Model(&Property{}).Count(&count).Error; err != nil {
		return log.Err("failed to count properties", err)
	}

	if count > 0 {
		log.Info("Database already has properties, skipping seed")
		return nil
	}

	kitchen, _ := NewRoomFromTemplate("Kitchen", RoomTypeKitchen)
	bathroom, _ := NewRoomFromTemplate("Main Bathroom", RoomTypeBathroom)

	property := &Property{
		Address:     "742 Evergreen Terrace, Apt 2B",
		TenantName:  "Demo Tenant",
		MoveOutDate: "2026-10-01",
		Rooms:       []Room{kitchen, bathroom},
	}
	property.RecalculateProgress()

	if err := db.SQL.Create(property).Error; err != nil {
		return log.Err("failed to seed demo property", err)
	}

	log.Info("Seeded demo property", "propertyID", property.ID)
	return nil
}
