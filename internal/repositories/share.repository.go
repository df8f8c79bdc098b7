package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depositdefender/internal/database"
	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

type ShareRepository interface {
	Save(ctx context.Context, share *SharedReport) error
	GetByID(ctx context.Context, id string) (*SharedReport, error)
	GetAll(ctx context.Context) ([]SharedReport, error)
	DeleteExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type shareRepository struct {
	db  database.DB
	log logger.Logger
}

func NewShareRepository(db database.DB) ShareRepository {
	return &shareRepository{
		db:  db,
		log: logger.New("shareRepository"),
	}
}

func (r *shareRepository) Save(ctx context.Context, share *SharedReport) error {
	log := r.log.Function("Save")

	if err := r.db.SQLWithContext(ctx).Save(share).Error; err != nil {
		return log.Err(
			"failed to save shared report",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"shareID", share.ID,
		)
	}

	return nil
}

func (r *shareRepository) GetByID(ctx context.Context, id string) (*SharedReport, error) {
	log := r.log.Function("GetByID")

	var share SharedReport
	err := r.db.SQLWithContext(ctx).First(&share, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, log.Err(
			"failed to get shared report",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"shareID", id,
		)
	}

	return &share, nil
}

func (r *shareRepository) GetAll(ctx context.Context) ([]SharedReport, error) {
	log := r.log.Function("GetAll")

	var shares []SharedReport
	if err := r.db.SQLWithContext(ctx).Find(&shares).Error; err != nil {
		return nil, log.Err(
			"failed to get all shared reports",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
		)
	}

	return shares, nil
}

// DeleteExpired removes every share whose expiry has passed, using the
// expiry-timestamp index. Returns the number of rows swept.
func (r *shareRepository) DeleteExpired(ctx context.Context, asOf time.Time) (int64, error) {
	log := r.log.Function("DeleteExpired")

	result := r.db.SQLWithContext(ctx).Delete(&SharedReport{}, "expires_at <= ?", asOf)
	if result.Error != nil {
		return 0, log.Err(
			"failed to delete expired shared reports",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, result.Error),
		)
	}

	return result.RowsAffected, nil
}
