package handlers

import (
	"fmt"

	"depositdefender/internal/app"
	"depositdefender/internal/controllers/reports"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	Handler
	reportController reports.ReportControllerInterface
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	log := logger.New("handlers").File("report_handler")
	return &ReportHandler{
		reportController: app.ReportController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportHandler) Register() {
	h.router.Post("/properties/:id/reports", h.generateReport)
	h.router.Get("/properties/:id/reports", h.listReports)

	reportRoutes := h.router.Group("/reports")
	reportRoutes.Get("/:id", h.getReport)
	reportRoutes.Get("/:id/pdf", h.downloadPDF)
	reportRoutes.Delete("/:id", h.deleteReport)
}

func (h *ReportHandler) generateReport(c *fiber.Ctx) error {
	log := h.log.Function("generateReport")

	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	options := DefaultPDFOptions()
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&options); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	report, err := h.reportController.Generate(c.UserContext(), propertyID, options)
	if err != nil {
		log.Er("failed to generate report", err, "propertyID", propertyID)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": reportSummary(report)})
}

func (h *ReportHandler) listReports(c *fiber.Ctx) error {
	propertyID, ok := parseID(c, "invalid property id")
	if !ok {
		return nil
	}

	reportList, err := h.reportController.GetByProperty(c.UserContext(), propertyID)
	if err != nil {
		return errorJSON(c, err)
	}

	summaries := make([]fiber.Map, len(reportList))
	for i := range reportList {
		summaries[i] = reportSummary(&reportList[i])
	}

	return c.JSON(fiber.Map{"reports": summaries})
}

func (h *ReportHandler) getReport(c *fiber.Ctx) error {
	reportID, ok := parseID(c, "invalid report id")
	if !ok {
		return nil
	}

	report, err := h.reportController.GetByID(c.UserContext(), reportID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{"report": reportSummary(report)})
}

func (h *ReportHandler) downloadPDF(c *fiber.Ctx) error {
	reportID, ok := parseID(c, "invalid report id")
	if !ok {
		return nil
	}

	report, err := h.reportController.GetByID(c.UserContext(), reportID)
	if err != nil {
		return errorJSON(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="inspection-report-%s.pdf"`, report.ID))

	return c.Send(report.PDFData)
}

func (h *ReportHandler) deleteReport(c *fiber.Ctx) error {
	log := h.log.Function("deleteReport")

	reportID, ok := parseID(c, "invalid report id")
	if !ok {
		return nil
	}

	if err := h.reportController.Delete(c.UserContext(), reportID); err != nil {
		log.Er("failed to delete report", err, "reportID", reportID)
		return errorJSON(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// reportSummary keeps PDF bytes out of JSON payloads. The binary travels only
// through the download route.
func reportSummary(report *Report) fiber.Map {
	return fiber.Map{
		"id":          report.ID,
		"propertyId":  report.PropertyID,
		"generatedAt": report.GeneratedAt,
		"sizeBytes":   len(report.PDFData),
	}
}

func parseID(c *fiber.Ctx, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": message,
		})
		return uuid.Nil, false
	}
	return id, true
}
