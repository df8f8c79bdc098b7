package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"depositdefender/internal/database"
	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PROPERTY_CACHE_EXPIRY = 1 * time.Hour
	PROPERTY_CACHE_PREFIX = "property:"
)

type PropertyRepository interface {
	Save(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	GetAll(ctx context.Context) ([]Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type propertyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPropertyRepository(db database.DB) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: logger.New("propertyRepository"),
	}
}

// Save inserts or fully replaces the record at its own identifier. Callers
// supply the complete record; there are no partial updates.
func (r *propertyRepository) Save(ctx context.Context, property *Property) error {
	log := r.log.Function("Save")

	if err := r.db.SQLWithContext(ctx).Save(property).Error; err != nil {
		return log.Err(
			"failed to save property",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"propertyID", property.ID,
		)
	}

	if err := r.clearPropertyCache(ctx, property.ID); err != nil {
		log.Warn("failed to clear property cache after save", "propertyID", property.ID, "error", err)
	}

	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	log := r.log.Function("GetByID")

	var property Property
	if found := r.getCacheByID(ctx, id, &property); found {
		return &property, nil
	}

	err := r.db.SQLWithContext(ctx).First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, log.Err(
			"failed to get property",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"propertyID", id,
		)
	}

	if err := r.addPropertyToCache(ctx, &property); err != nil {
		log.Warn("failed to add property to cache", "propertyID", id, "error", err)
	}

	return &property, nil
}

// GetAll returns every property in unspecified order; callers sort when order
// matters.
func (r *propertyRepository) GetAll(ctx context.Context) ([]Property, error) {
	log := r.log.Function("GetAll")

	var properties []Property
	if err := r.db.SQLWithContext(ctx).Find(&properties).Error; err != nil {
		return nil, log.Err(
			"failed to get all properties",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
		)
	}

	return properties, nil
}

// Delete removes the record; deleting an absent id is a no-op, not an error.
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(&Property{}, "id = ?", id).Error; err != nil {
		return log.Err(
			"failed to delete property",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"propertyID", id,
		)
	}

	if err := r.clearPropertyCache(ctx, id); err != nil {
		log.Warn("failed to clear property cache after delete", "propertyID", id, "error", err)
	}

	return nil
}

// DeleteCascade removes the property and every report that belongs to it in
// one transaction. Shared reports are intentionally left behind: a share is a
// standalone snapshot that outlives its source.
func (r *propertyRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("DeleteCascade")

	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Report{}, "property_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Property{}, "id = ?", id).Error
	})
	if err != nil {
		return log.Err(
			"failed to cascade delete property",
			fmt.Errorf("%w: %v", database.ErrStorageUnavailable, err),
			"propertyID", id,
		)
	}

	if err := r.clearPropertyCache(ctx, id); err != nil {
		log.Warn("failed to clear property cache after cascade delete", "propertyID", id, "error", err)
	}

	return nil
}

func (r *propertyRepository) getCacheByID(ctx context.Context, id uuid.UUID, property *Property) bool {
	if !r.db.Cache.Enabled() {
		return false
	}

	cacheKey := PROPERTY_CACHE_PREFIX + id.String()
	found, err := database.NewCacheBuilder(r.db.Cache.General, cacheKey).WithContext(ctx).Get(property)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get property from cache", "propertyID", id, "error", err)
		return false
	}

	return found
}

func (r *propertyRepository) addPropertyToCache(ctx context.Context, property *Property) error {
	if !r.db.Cache.Enabled() {
		return nil
	}

	cacheKey := PROPERTY_CACHE_PREFIX + property.ID.String()
	return database.NewCacheBuilder(r.db.Cache.General, cacheKey).
		WithStruct(property).
		WithTTL(PROPERTY_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *propertyRepository) clearPropertyCache(ctx context.Context, id uuid.UUID) error {
	if !r.db.Cache.Enabled() {
		return nil
	}

	cacheKey := PROPERTY_CACHE_PREFIX + id.String()
	return database.NewCacheBuilder(r.db.Cache.General, cacheKey).WithContext(ctx).Delete()
}
