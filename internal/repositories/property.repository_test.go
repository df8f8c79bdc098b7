package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"depositdefender/internal/database"
	"depositdefender/internal/models"
	"depositdefender/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func buildProperty(t *testing.T) *models.Property {
	t.Helper()

	kitchen, ok := models.NewRoomFromTemplate("Kitchen", models.RoomTypeKitchen)
	require.True(t, ok)

	kitchen.Items[0].SetCompleted(true)
	kitchen.Items[0].Severity = models.SeverityModerate
	kitchen.Items[0].Notes = "deep scratch on counter"
	kitchen.Items[0].Photos = append(kitchen.Items[0].Photos, models.MediaFile{
		ID:       "m-1",
		Filename: "counter.jpg",
		DataURL:  "data:image/jpeg;base64,/9j/4AAQ",
		Type:     models.MediaTypeImage,
		Size:     6,
	})

	property := &models.Property{
		Address:     "12 Test Lane",
		TenantName:  "Jordan Doe",
		MoveOutDate: "2026-09-15",
		Rooms:       []models.Room{kitchen},
	}
	property.RecalculateProgress()

	return property
}

func TestPropertyRepository_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPropertyRepository(db)
	ctx := context.Background()

	property := buildProperty(t)
	require.NoError(t, repo.Save(ctx, property))
	require.NotEqual(t, uuid.Nil, property.ID)

	loaded, err := repo.GetByID(ctx, property.ID)
	require.NoError(t, err)

	assert.Equal(t, property.Address, loaded.Address)
	assert.Equal(t, property.TenantName, loaded.TenantName)
	require.Len(t, loaded.Rooms, 1)

	room := loaded.Rooms[0]
	assert.Equal(t, "Kitchen", room.Name)
	assert.Equal(t, 1, room.CompletedItems)
	assert.Equal(t, models.SeverityModerate, room.Items[0].Severity)
	assert.Equal(t, "deep scratch on counter", room.Items[0].Notes)
	require.Len(t, room.Items[0].Photos, 1)
	assert.Equal(t, "counter.jpg", room.Items[0].Photos[0].Filename)
}

func TestPropertyRepository_SaveReplacesExisting(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPropertyRepository(db)
	ctx := context.Background()

	property := buildProperty(t)
	require.NoError(t, repo.Save(ctx, property))

	property.TenantName = "Renamed Tenant"
	property.Rooms[0].Items[1].SetCompleted(true)
	property.RecalculateProgress()
	require.NoError(t, repo.Save(ctx, property))

	loaded, err := repo.GetByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Tenant", loaded.TenantName)
	assert.Equal(t, 2, loaded.Rooms[0].CompletedItems)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPropertyRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPropertyRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestPropertyRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewPropertyRepository(db)
	ctx := context.Background()

	property := buildProperty(t)
	require.NoError(t, repo.Save(ctx, property))

	require.NoError(t, repo.Delete(ctx, property.ID))
	_, err := repo.GetByID(ctx, property.ID)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	// Deleting something already gone is not an error.
	assert.NoError(t, repo.Delete(ctx, property.ID))
}

func TestPropertyRepository_DeleteCascade(t *testing.T) {
	db := newTestDB(t)
	propertyRepo := repositories.NewPropertyRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	shareRepo := repositories.NewShareRepository(db)
	ctx := context.Background()

	property := buildProperty(t)
	require.NoError(t, propertyRepo.Save(ctx, property))

	report := &models.Report{
		PropertyID:  property.ID,
		GeneratedAt: time.Now().UTC(),
		PDFData:     []byte("%PDF-1.4 test"),
		Property:    datatypes.NewJSONType(property.Clone()),
	}
	require.NoError(t, reportRepo.Save(ctx, report))

	share := &models.SharedReport{
		ID:         "tok-cascade",
		ReportData: datatypes.NewJSONType(*report),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, shareRepo.Save(ctx, share))

	require.NoError(t, propertyRepo.DeleteCascade(ctx, property.ID))

	_, err := propertyRepo.GetByID(ctx, property.ID)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	reports, err := reportRepo.GetByProperty(ctx, property.ID)
	require.NoError(t, err)
	assert.Empty(t, reports)

	// Shares survive the cascade: a recipient holding the link keeps the
	// snapshot until it expires.
	survivor, err := shareRepo.GetByID(ctx, share.ID)
	require.NoError(t, err)
	assert.Equal(t, share.ID, survivor.ID)
}
