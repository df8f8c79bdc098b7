package handlers

import (
	"depositdefender/config"
	"depositdefender/internal/controllers/properties"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(
	router fiber.Router,
	config config.Config,
	propertyController properties.PropertyControllerInterface,
) {
	router.Get("/health", func(c *fiber.Ctx) error {
		if !propertyController.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "initializing",
				"version": config.GeneralVersion,
				"service": "depositdefender_api",
			})
		}

		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": config.GeneralVersion,
			"service": "depositdefender_api",
		})
	})
}
