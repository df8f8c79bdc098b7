package middleware

import (
	"depositdefender/config"
	"depositdefender/internal/database"
	"depositdefender/internal/events"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB       database.DB
	Config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:       db,
		Config:   config,
		log:      log,
		eventBus: eventBus,
	}
}
