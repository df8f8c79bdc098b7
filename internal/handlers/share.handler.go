package handlers

import (
	"fmt"

	"depositdefender/internal/app"
	"depositdefender/internal/controllers/reports"
	"depositdefender/internal/events"
	"depositdefender/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type ShareHandler struct {
	Handler
	sharingService   *services.SharingService
	reportController reports.ReportControllerInterface
	eventBus         *events.EventBus
}

func NewShareHandler(app app.App, router fiber.Router) *ShareHandler {
	log := logger.New("handlers").File("share_handler")
	return &ShareHandler{
		sharingService:   app.SharingService,
		reportController: app.ReportController,
		eventBus:         app.EventBus,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ShareHandler) Register(router fiber.Router) {
	router.Post("/reports/:id/shares", h.createShare)

	shareRoutes := router.Group("/shares")
	shareRoutes.Get("/:shareId/info", h.getShareInfo)
	shareRoutes.Delete("/:shareId", h.revokeShare)
}

// RegisterPublic mounts the recipient-facing routes. No /api prefix: these
// paths appear verbatim in shared URLs.
func (h *ShareHandler) RegisterPublic(router fiber.Router) {
	router.Get("/shared/:shareId", h.resolveShare)
	router.Get("/shared/:shareId/pdf", h.downloadSharedPDF)
}

func (h *ShareHandler) createShare(c *fiber.Ctx) error {
	log := h.log.Function("createShare")

	reportID, ok := parseID(c, "invalid report id")
	if !ok {
		return nil
	}

	report, err := h.reportController.GetByID(c.UserContext(), reportID)
	if err != nil {
		return errorJSON(c, err)
	}

	share, shareURL, err := h.sharingService.CreateShare(c.UserContext(), report)
	if err != nil {
		log.Er("failed to create share", err, "reportID", reportID)
		return errorJSON(c, err)
	}

	h.publishShareEvent(events.SHARE_CREATED, share.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"shareId":   share.ID,
		"shareUrl":  shareURL,
		"expiresAt": share.ExpiresAt,
	})
}

func (h *ShareHandler) getShareInfo(c *fiber.Ctx) error {
	info, err := h.sharingService.GetShareInfo(c.UserContext(), c.Params("shareId"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(info)
}

func (h *ShareHandler) revokeShare(c *fiber.Ctx) error {
	log := h.log.Function("revokeShare")
	shareID := c.Params("shareId")

	if err := h.sharingService.Revoke(c.UserContext(), shareID); err != nil {
		log.Er("failed to revoke share", err, "shareID", shareID)
		return errorJSON(c, err)
	}

	h.publishShareEvent(events.SHARE_REVOKED, shareID)

	return c.SendStatus(fiber.StatusNoContent)
}

// resolveShare is what a recipient's browser hits. Each successful hit counts
// against the share's access tally; expired or revoked links look identical
// to links that never existed.
func (h *ShareHandler) resolveShare(c *fiber.Ctx) error {
	share, err := h.sharingService.ResolveShare(c.UserContext(), c.Params("shareId"))
	if err != nil {
		return errorJSON(c, err)
	}

	report := share.ReportData.Data()

	return c.JSON(fiber.Map{
		"report": fiber.Map{
			"id":          report.ID,
			"generatedAt": report.GeneratedAt,
			"property":    report.Property.Data(),
		},
		"expiresAt":   share.ExpiresAt,
		"accessCount": share.AccessCount,
	})
}

func (h *ShareHandler) downloadSharedPDF(c *fiber.Ctx) error {
	share, err := h.sharingService.ResolveShare(c.UserContext(), c.Params("shareId"))
	if err != nil {
		return errorJSON(c, err)
	}

	report := share.ReportData.Data()

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="inspection-report-%s.pdf"`, report.ID))

	return c.Send(share.PDFData)
}

func (h *ShareHandler) publishShareEvent(messageType events.MessageType, shareID string) {
	err := h.eventBus.Publish(events.PROPERTY_CHANNEL, events.Event{
		Type: messageType,
		Data: map[string]any{"shareId": shareID},
	})
	if err != nil {
		h.log.Warn("failed to publish share event", "type", messageType, "error", err)
	}
}
