package repositories

import (
	"context"
	"errors"
	"fmt"

	"depositdefender/internal/database"
	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Save(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReportRepository(db database.DB) ReportRepository {
	return &reportRepository{
		db:  db,
		log: logger.New("reportRepository"),
	}
}

func (r *reportRepository) Save(ctx context.Context, report *Report) error {
	log := r.log.Function("Save")

	if err := r.db.SQLWithContext(ctx).Save(report).Error; err != nil {
		return log.Err(
			"failed to save report",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"reportID", report.ID,
		)
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	log := r.log.Function("GetByID")

	var report Report
	err := r.db.SQLWithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, log.Err(
			"failed to get report",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"reportID", id,
		)
	}

	return &report, nil
}

// GetByProperty is the secondary lookup over the owning-property index.
func (r *reportRepository) GetByProperty(ctx context.Context, propertyID uuid.UUID) ([]Report, error) {
	log := r.log.Function("GetByProperty")

	var reports []Report
	err := r.db.SQLWithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("generated_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, log.Err(
			"failed to get reports by property",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"propertyID", propertyID,
		)
	}

	return reports, nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(&Report{}, "id = ?", id).Error; err != nil {
		return log.Err(
			"failed to delete report",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"reportID", id,
		)
	}

	return nil
}
