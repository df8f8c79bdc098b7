package handlers

import (
	"errors"

	"depositdefender/internal/app"
	"depositdefender/internal/controllers/properties"
	"depositdefender/internal/database"
	"depositdefender/internal/handlers/middleware"
	"depositdefender/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	WebSocketHandler(router, app.Websocket)

	// Share resolution lives outside /api: the link is opened by a recipient
	// who has nothing but the URL.
	shareHandler := NewShareHandler(*app, router)
	shareHandler.RegisterPublic(router)

	api := router.Group("/api")
	HealthHandler(api, app.Config, app.PropertyController)
	NewPropertyHandler(*app, api).Register()
	NewReportHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()
	shareHandler.Register(api)

	return nil
}

// statusForError maps domain sentinels onto HTTP statuses so every handler
// reports failures the same way.
func statusForError(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, properties.ErrValidation), errors.Is(err, services.ErrInvalidMediaData):
		return fiber.StatusBadRequest
	case errors.Is(err, database.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
