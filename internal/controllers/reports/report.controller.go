package reports

import (
	"context"
	"time"

	"depositdefender/internal/repositories"
	"depositdefender/internal/services"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportControllerInterface interface {
	Generate(ctx context.Context, propertyID uuid.UUID, options PDFOptions) (*Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReportController struct {
	propertyRepo repositories.PropertyRepository
	reportRepo   repositories.ReportRepository
	pdfService   *services.PDFService
	log          logger.Logger
}

func New(
	propertyRepo repositories.PropertyRepository,
	reportRepo repositories.ReportRepository,
	pdfService *services.PDFService,
) *ReportController {
	return &ReportController{
		propertyRepo: propertyRepo,
		reportRepo:   reportRepo,
		pdfService:   pdfService,
		log:          logger.New("reportController"),
	}
}

// Generate renders the property's current state to PDF and stores the result
// alongside a snapshot of the property as it looked at generation time.
// Render failures leave no partial report behind.
func (c *ReportController) Generate(ctx context.Context, propertyID uuid.UUID, options PDFOptions) (*Report, error) {
	log := c.log.Function("Generate")

	property, err := c.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, log.Err("failed to load property for report", err, "propertyID", propertyID)
	}

	pdfData, err := c.pdfService.Generate(property, options)
	if err != nil {
		return nil, log.Err("pdf generation failed", err, "propertyID", propertyID)
	}

	report := &Report{
		PropertyID:  property.ID,
		GeneratedAt: time.Now().UTC(),
		PDFData:     pdfData,
		Property:    datatypes.NewJSONType(property.Clone()),
	}

	if err := c.reportRepo.Save(ctx, report); err != nil {
		return nil, log.Err("failed to save report", err, "propertyID", propertyID)
	}

	log.Info("Generated report", "reportID", report.ID, "propertyID", propertyID, "bytes", len(pdfData))
	return report, nil
}

func (c *ReportController) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return c.reportRepo.GetByID(ctx, id)
}

func (c *ReportController) GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Report, error) {
	return c.reportRepo.GetByProperty(ctx, propertyID)
}

func (c *ReportController) Delete(ctx context.Context, id uuid.UUID) error {
	return c.reportRepo.Delete(ctx, id)
}
