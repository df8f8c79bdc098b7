package properties_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"depositdefender/internal/controllers/properties"
	"depositdefender/internal/database"
	"depositdefender/internal/events"
	"depositdefender/internal/models"
	"depositdefender/internal/repositories"
	"depositdefender/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu    sync.Mutex
	types []models.NotificationType
}

func (n *recordingNotifier) Notify(
	notificationType models.NotificationType,
	title, message string,
	duration time.Duration,
) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.types = append(n.types, notificationType)
}

func (n *recordingNotifier) count(notificationType models.NotificationType) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	total := 0
	for _, nt := range n.types {
		if nt == notificationType {
			total++
		}
	}
	return total
}

type controllerFixture struct {
	controller   *properties.PropertyController
	propertyRepo repositories.PropertyRepository
	reportRepo   repositories.ReportRepository
	shareRepo    repositories.ShareRepository
	notifier     *recordingNotifier
}

func newFixture(t *testing.T) *controllerFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := database.DB{SQL: gormDB}
	require.NoError(t, db.MigrateModels())

	repos := repositories.New(db)
	notifier := &recordingNotifier{}
	controller := properties.New(repos.Property, services.NewMediaService(), events.New(nil), notifier)
	require.NoError(t, controller.Initialize(context.Background()))

	return &controllerFixture{
		controller:   controller,
		propertyRepo: repos.Property,
		reportRepo:   repos.Report,
		shareRepo:    repos.Share,
		notifier:     notifier,
	}
}

func validForm() models.PropertyFormData {
	return models.PropertyFormData{
		Address:     "8 Controller Court",
		TenantName:  "Casey Renter",
		MoveOutDate: "2026-10-01",
	}
}

func imageDataURL() string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF})
}

func TestPropertyController_CreateProperty(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	t.Run("creates and persists", func(t *testing.T) {
		property, err := fixture.controller.CreateProperty(ctx, validForm())
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, property.ID)
		assert.Empty(t, property.Rooms)
		assert.Equal(t, float64(0), property.OverallProgress)

		persisted, err := fixture.propertyRepo.GetByID(ctx, property.ID)
		require.NoError(t, err)
		assert.Equal(t, "8 Controller Court", persisted.Address)
		assert.Equal(t, 1, fixture.notifier.count(models.NotificationSuccess))
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(form *models.PropertyFormData)
		}{
			{name: "missing address", mutate: func(f *models.PropertyFormData) { f.Address = "  " }},
			{name: "missing tenant", mutate: func(f *models.PropertyFormData) { f.TenantName = "" }},
			{name: "missing move-out date", mutate: func(f *models.PropertyFormData) { f.MoveOutDate = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				form := validForm()
				tt.mutate(&form)

				_, err := fixture.controller.CreateProperty(ctx, form)
				assert.True(t, errors.Is(err, properties.ErrValidation))
			})
		}
	})
}

func TestPropertyController_GetProperties(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	_, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	form := validForm()
	form.Address = "9 Controller Court"
	_, err = fixture.controller.CreateProperty(ctx, form)
	require.NoError(t, err)

	listed := fixture.controller.GetProperties()
	require.Len(t, listed, 2)

	t.Run("copies do not alias controller state", func(t *testing.T) {
		listed[0].Address = "tampered"
		fresh, err := fixture.controller.GetProperty(listed[0].ID)
		require.NoError(t, err)
		assert.NotEqual(t, "tampered", fresh.Address)
	})
}

func TestPropertyController_RoomLifecycle(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	property, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	t.Run("add room from template", func(t *testing.T) {
		updated, err := fixture.controller.AddRoom(ctx, property.ID, "Kitchen", models.RoomTypeKitchen)
		require.NoError(t, err)
		require.Len(t, updated.Rooms, 1)
		assert.Equal(t, 22, updated.Rooms[0].TotalItems)
		assert.Equal(t, float64(0), updated.OverallProgress)
	})

	t.Run("unknown room type is rejected", func(t *testing.T) {
		_, err := fixture.controller.AddRoom(ctx, property.ID, "Garage", models.RoomType("garage"))
		assert.True(t, errors.Is(err, properties.ErrValidation))
	})

	t.Run("remove room", func(t *testing.T) {
		current, err := fixture.controller.GetProperty(property.ID)
		require.NoError(t, err)
		require.Len(t, current.Rooms, 1)

		updated, err := fixture.controller.RemoveRoom(ctx, property.ID, current.Rooms[0].ID)
		require.NoError(t, err)
		assert.Empty(t, updated.Rooms)
	})

	t.Run("remove unknown room", func(t *testing.T) {
		_, err := fixture.controller.RemoveRoom(ctx, property.ID, "missing-room")
		assert.True(t, errors.Is(err, database.ErrNotFound))
	})
}

func TestPropertyController_ItemMutations(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	property, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	withRoom, err := fixture.controller.AddRoom(ctx, property.ID, "Kitchen", models.RoomTypeKitchen)
	require.NoError(t, err)
	roomID := withRoom.Rooms[0].ID
	itemID := withRoom.Rooms[0].Items[0].ID

	t.Run("toggle recomputes progress", func(t *testing.T) {
		updated, err := fixture.controller.ToggleItem(ctx, property.ID, roomID, itemID, true)
		require.NoError(t, err)

		room := updated.Room(roomID)
		require.NotNil(t, room)
		assert.Equal(t, 1, room.CompletedItems)
		assert.InDelta(t, 100*float64(1)/float64(22), updated.OverallProgress, 0.001)
	})

	t.Run("severity on completed item", func(t *testing.T) {
		updated, err := fixture.controller.SetItemSeverity(ctx, property.ID, roomID, itemID, models.SeverityMajor)
		require.NoError(t, err)
		assert.Equal(t, models.SeverityMajor, updated.Room(roomID).Items[0].Severity)
	})

	t.Run("severity rejected on incomplete item", func(t *testing.T) {
		otherItem := withRoom.Rooms[0].Items[1].ID
		_, err := fixture.controller.SetItemSeverity(ctx, property.ID, roomID, otherItem, models.SeverityMinor)
		assert.True(t, errors.Is(err, properties.ErrValidation))
	})

	t.Run("un-toggling clears severity", func(t *testing.T) {
		updated, err := fixture.controller.ToggleItem(ctx, property.ID, roomID, itemID, false)
		require.NoError(t, err)

		item := updated.Room(roomID).Items[0]
		assert.False(t, item.Completed)
		assert.Empty(t, item.Severity)
	})

	t.Run("notes", func(t *testing.T) {
		updated, err := fixture.controller.SetItemNotes(ctx, property.ID, roomID, itemID, "hairline crack")
		require.NoError(t, err)
		assert.Equal(t, "hairline crack", updated.Room(roomID).Items[0].Notes)
	})

	t.Run("mutations survive a reload from storage", func(t *testing.T) {
		persisted, err := fixture.propertyRepo.GetByID(ctx, property.ID)
		require.NoError(t, err)
		assert.Equal(t, "hairline crack", persisted.Room(roomID).Items[0].Notes)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := fixture.controller.ToggleItem(ctx, property.ID, roomID, "missing-item", true)
		assert.True(t, errors.Is(err, database.ErrNotFound))
	})
}

func TestPropertyController_Media(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	property, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	withRoom, err := fixture.controller.AddRoom(ctx, property.ID, "Kitchen", models.RoomTypeKitchen)
	require.NoError(t, err)
	roomID := withRoom.Rooms[0].ID
	itemID := withRoom.Rooms[0].Items[0].ID

	t.Run("attach photo", func(t *testing.T) {
		updated, err := fixture.controller.AddMedia(
			ctx, property.ID, roomID, itemID, "counter.jpg", imageDataURL(), true)
		require.NoError(t, err)

		photos := updated.Room(roomID).Items[0].Photos
		require.Len(t, photos, 1)
		assert.Equal(t, "counter.jpg", photos[0].Filename)
		assert.True(t, photos[0].Watermarked)
	})

	t.Run("invalid payload is rejected before storage", func(t *testing.T) {
		_, err := fixture.controller.AddMedia(
			ctx, property.ID, roomID, itemID, "nope.txt", "not-a-data-url", false)
		assert.True(t, errors.Is(err, properties.ErrValidation))
	})

	t.Run("remove photo", func(t *testing.T) {
		current, err := fixture.controller.GetProperty(property.ID)
		require.NoError(t, err)
		mediaID := current.Room(roomID).Items[0].Photos[0].ID

		updated, err := fixture.controller.RemoveMedia(ctx, property.ID, roomID, itemID, mediaID)
		require.NoError(t, err)
		assert.Empty(t, updated.Room(roomID).Items[0].Photos)
	})
}

func TestPropertyController_RemoveProperty(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	property, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	require.NoError(t, fixture.controller.RemoveProperty(ctx, property.ID))

	_, err = fixture.controller.GetProperty(property.ID)
	assert.True(t, errors.Is(err, database.ErrNotFound))

	_, err = fixture.propertyRepo.GetByID(ctx, property.ID)
	assert.True(t, errors.Is(err, database.ErrNotFound))
}

func TestPropertyController_InitializeLoadsExisting(t *testing.T) {
	fixture := newFixture(t)
	ctx := context.Background()

	property, err := fixture.controller.CreateProperty(ctx, validForm())
	require.NoError(t, err)

	// A second controller over the same store sees the saved state.
	reloaded := properties.New(
		fixture.propertyRepo, services.NewMediaService(), events.New(nil), fixture.notifier)
	require.NoError(t, reloaded.Initialize(ctx))
	assert.True(t, reloaded.Ready())

	loaded, err := reloaded.GetProperty(property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.Address, loaded.Address)
}
