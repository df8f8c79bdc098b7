package handlers

import (
	"depositdefender/internal/app"
	"depositdefender/internal/controllers/notifications"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	notificationController notifications.NotificationControllerInterface
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	log := logger.New("handlers").File("notification_handler")
	return &NotificationHandler{
		notificationController: app.NotificationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	notificationRoutes := h.router.Group("/notifications")

	notificationRoutes.Get("/", h.listNotifications)
	notificationRoutes.Delete("/:id", h.dismissNotification)
}

func (h *NotificationHandler) listNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"notifications": h.notificationController.Active(),
	})
}

func (h *NotificationHandler) dismissNotification(c *fiber.Ctx) error {
	if !h.notificationController.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "notification not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
