package app

import (
	"context"

	"depositdefender/config"
	"depositdefender/internal/database"
	"depositdefender/internal/events"
	"depositdefender/internal/handlers/middleware"
	"depositdefender/internal/jobs"
	"depositdefender/internal/repositories"
	"depositdefender/internal/services"
	"depositdefender/internal/websockets"

	notificationController "depositdefender/internal/controllers/notifications"
	propertyController "depositdefender/internal/controllers/properties"
	reportController "depositdefender/internal/controllers/reports"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	SharingService   *services.SharingService
	PDFService       *services.PDFService
	MediaService     *services.MediaService
	SchedulerService *services.SchedulerService

	// Repositories
	PropertyRepo repositories.PropertyRepository
	ReportRepo   repositories.ReportRepository
	ShareRepo    repositories.ShareRepository

	// Controllers
	PropertyController     propertyController.PropertyControllerInterface
	ReportController       reportController.ReportControllerInterface
	NotificationController *notificationController.NotificationController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Schema keeps itself current on boot. There is no fleet to coordinate
	// rollouts across, only this device.
	if err := db.MigrateModels(); err != nil {
		return &App{}, log.Err("failed to migrate database", err)
	}
	if err := db.CreateIndexes(); err != nil {
		return &App{}, log.Err("failed to create indexes", err)
	}

	eventBus := events.New(db.Cache.Events)

	repos := repositories.New(db)

	sharingService := services.NewSharingService(repos.Share, config)
	pdfService := services.NewPDFService()
	mediaService := services.NewMediaService()
	schedulerService := services.NewSchedulerService()

	notificationController := notificationController.New(eventBus)
	propertyController := propertyController.New(
		repos.Property,
		mediaService,
		eventBus,
		notificationController,
	)
	reportController := reportController.New(repos.Property, repos.Report, pdfService)

	websocket, err := websockets.New(eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config)

	if config.SchedulerEnabled {
		shareCleanupJob := jobs.NewShareCleanupJob(sharingService)
		if err := schedulerService.AddJob(shareCleanupJob); err != nil {
			return &App{}, log.Err("failed to register share cleanup job", err)
		}
		log.Info("Registered share cleanup job with scheduler")

		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	if err := propertyController.Initialize(context.Background()); err != nil {
		return &App{}, log.Err("failed to load properties", err)
	}

	app := &App{
		Database:               db,
		Config:                 config,
		Middleware:             middleware,
		SharingService:         sharingService,
		PDFService:             pdfService,
		MediaService:           mediaService,
		SchedulerService:       schedulerService,
		PropertyRepo:           repos.Property,
		ReportRepo:             repos.Report,
		ShareRepo:              repos.Share,
		PropertyController:     propertyController,
		ReportController:       reportController,
		NotificationController: notificationController,
		Websocket:              websocket,
		EventBus:               eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.SharingService,
		a.PDFService,
		a.MediaService,
		a.SchedulerService,
		a.PropertyRepo,
		a.ReportRepo,
		a.ShareRepo,
		a.PropertyController,
		a.ReportController,
		a.NotificationController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.SchedulerService != nil && a.SchedulerService.IsRunning() {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.NotificationController != nil {
		a.NotificationController.Stop()
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
