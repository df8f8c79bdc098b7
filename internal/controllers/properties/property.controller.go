package properties

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"depositdefender/internal/database"
	"depositdefender/internal/events"
	"depositdefender/internal/repositories"
	"depositdefender/internal/services"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

// ErrValidation marks a rejected payload: required fields missing or an
// unknown enumeration value. Caught before any storage operation is
// attempted.
var ErrValidation = errors.New("validation failed")

// Notifier publishes ephemeral user-facing messages. Implemented by the
// notifications controller; a duration of 0 keeps the message until
// dismissed.
type Notifier interface {
	Notify(notificationType NotificationType, title, message string, duration time.Duration)
}

type PropertyControllerInterface interface {
	Initialize(ctx context.Context) error
	Ready() bool
	GetProperties() []Property
	GetProperty(id uuid.UUID) (*Property, error)
	CreateProperty(ctx context.Context, form PropertyFormData) (*Property, error)
	UpsertProperty(ctx context.Context, property *Property) error
	RemoveProperty(ctx context.Context, id uuid.UUID) error
	AddRoom(ctx context.Context, propertyID uuid.UUID, name string, roomType RoomType) (*Property, error)
	RemoveRoom(ctx context.Context, propertyID uuid.UUID, roomID string) (*Property, error)
	ToggleItem(ctx context.Context, propertyID uuid.UUID, roomID, itemID string, completed bool) (*Property, error)
	SetItemSeverity(ctx context.Context, propertyID uuid.UUID, roomID, itemID string, severity SeverityLevel) (*Property, error)
	SetItemNotes(ctx context.Context, propertyID uuid.UUID, roomID, itemID, notes string) (*Property, error)
	AddMedia(ctx context.Context, propertyID uuid.UUID, roomID, itemID, filename, dataURL string, watermarked bool) (*Property, error)
	RemoveMedia(ctx context.Context, propertyID uuid.UUID, roomID, itemID, mediaID string) (*Property, error)
}

// PropertyController is the single in-memory source of truth for the
// property list. Every mutation is write-through: the record store is
// updated first and the cache only on success, so the cache never shows
// state that failed to persist.
type PropertyController struct {
	propertyRepo repositories.PropertyRepository
	mediaService *services.MediaService
	eventBus     *events.EventBus
	notifier     Notifier
	log          logger.Logger

	mu          sync.RWMutex
	properties  []Property
	initialized bool
}

func New(
	propertyRepo repositories.PropertyRepository,
	mediaService *services.MediaService,
	eventBus *events.EventBus,
	notifier Notifier,
) *PropertyController {
	return &PropertyController{
		propertyRepo: propertyRepo,
		mediaService: mediaService,
		eventBus:     eventBus,
		notifier:     notifier,
		log:          logger.New("propertyController"),
	}
}

// Initialize loads every property into memory. It must complete before any
// consumer reads the list; the router is not mounted until it has. A read
// failure here blocks startup and raises a persistent notification.
func (c *PropertyController) Initialize(ctx context.Context) error {
	log := c.log.Function("Initialize")

	properties, err := c.propertyRepo.GetAll(ctx)
	if err != nil {
		c.notifier.Notify(NotificationError, "Storage Error",
			"Could not load saved properties. Check device storage and restart.", 0)
		return log.Err("failed to load properties", err)
	}

	c.mu.Lock()
	c.properties = properties
	c.initialized = true
	c.mu.Unlock()

	log.Info("Loaded properties into memory", "count", len(properties))
	return nil
}

func (c *PropertyController) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// GetProperties returns deep copies sorted newest first. The store makes no
// ordering promise, so ordering happens here.
func (c *PropertyController) GetProperties() []Property {
	c.mu.RLock()
	defer c.mu.RUnlock()

	properties := make([]Property, len(c.properties))
	for i, property := range c.properties {
		properties[i] = property.Clone()
	}

	sort.Slice(properties, func(i, j int) bool {
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})

	return properties
}

func (c *PropertyController) GetProperty(id uuid.UUID) (*Property, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.properties {
		if c.properties[i].ID == id {
			clone := c.properties[i].Clone()
			return &clone, nil
		}
	}

	return nil, database.ErrNotFound
}

func (c *PropertyController) CreateProperty(ctx context.Context, form PropertyFormData) (*Property, error) {
	log := c.log.Function("CreateProperty")

	if err := validateForm(form); err != nil {
		return nil, err
	}

	property := &Property{
		Address:     strings.TrimSpace(form.Address),
		TenantName:  strings.TrimSpace(form.TenantName),
		MoveOutDate: form.MoveOutDate,
		Rooms:       []Room{},
	}
	if form.TenantEmail != "" {
		property.TenantEmail = &form.TenantEmail
	}
	if form.LandlordName != "" {
		property.LandlordName = &form.LandlordName
	}
	if form.LandlordEmail != "" {
		property.LandlordEmail = &form.LandlordEmail
	}
	if form.LandlordPhone != "" {
		property.LandlordPhone = &form.LandlordPhone
	}
	property.RecalculateProgress()

	if err := c.UpsertProperty(ctx, property); err != nil {
		return nil, err
	}

	log.Info("Created property", "propertyID", property.ID, "address", property.Address)
	c.notifier.Notify(NotificationSuccess, "Property Created",
		"Inspection started for "+property.Address, DefaultNotificationDuration)

	return property, nil
}

// UpsertProperty writes through to the record store, then replaces or
// appends in the in-memory collection. On store failure the cache is left
// untouched and the error bubbles so the UI can revert optimistic state.
func (c *PropertyController) UpsertProperty(ctx context.Context, property *Property) error {
	property.RecalculateProgress()

	if err := c.propertyRepo.Save(ctx, property); err != nil {
		c.notifier.Notify(NotificationError, "Save Failed",
			"Your change could not be saved to device storage.", DefaultNotificationDuration)
		return err
	}

	c.mu.Lock()
	replaced := false
	for i := range c.properties {
		if c.properties[i].ID == property.ID {
			c.properties[i] = property.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		c.properties = append(c.properties, property.Clone())
	}
	c.mu.Unlock()

	c.publishPropertyEvent(events.PROPERTY_UPDATED, property.ID)
	return nil
}

// RemoveProperty cascades through the record store (reports go with the
// property, shares stay), then evicts from memory on success only.
func (c *PropertyController) RemoveProperty(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("RemoveProperty")

	if err := c.propertyRepo.DeleteCascade(ctx, id); err != nil {
		c.notifier.Notify(NotificationError, "Delete Failed",
			"The property could not be removed from device storage.", DefaultNotificationDuration)
		return err
	}

	c.mu.Lock()
	for i := range c.properties {
		if c.properties[i].ID == id {
			c.properties = append(c.properties[:i], c.properties[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	log.Info("Removed property", "propertyID", id)
	c.publishPropertyEvent(events.PROPERTY_DELETED, id)
	c.notifier.Notify(NotificationSuccess, "Property Deleted",
		"The property and its reports were removed.", DefaultNotificationDuration)

	return nil
}

func (c *PropertyController) AddRoom(ctx context.Context, propertyID uuid.UUID, name string, roomType RoomType) (*Property, error) {
	if !roomType.Valid() {
		return nil, c.log.Function("AddRoom").Err(
			"unknown room type",
			ErrValidation,
			"roomType", roomType,
		)
	}

	return c.mutate(ctx, propertyID, func(property *Property) error {
		room, _ := NewRoomFromTemplate(name, roomType)
		property.Rooms = append(property.Rooms, room)
		return nil
	})
}

func (c *PropertyController) RemoveRoom(ctx context.Context, propertyID uuid.UUID, roomID string) (*Property, error) {
	return c.mutate(ctx, propertyID, func(property *Property) error {
		if !property.RemoveRoom(roomID) {
			return database.ErrNotFound
		}
		return nil
	})
}

func (c *PropertyController) ToggleItem(ctx context.Context, propertyID uuid.UUID, roomID, itemID string, completed bool) (*Property, error) {
	return c.mutateItem(ctx, propertyID, roomID, itemID, func(item *ChecklistItem) error {
		item.SetCompleted(completed)
		return nil
	})
}

func (c *PropertyController) SetItemSeverity(ctx context.Context, propertyID uuid.UUID, roomID, itemID string, severity SeverityLevel) (*Property, error) {
	if severity != "" && !severity.Valid() {
		return nil, c.log.Function("SetItemSeverity").Err(
			"unknown severity level",
			ErrValidation,
			"severity", severity,
		)
	}

	return c.mutateItem(ctx, propertyID, roomID, itemID, func(item *ChecklistItem) error {
		// Severity only describes a completed item's issue.
		if !item.Completed && severity != "" {
			return ErrValidation
		}
		item.Severity = severity
		return nil
	})
}

func (c *PropertyController) SetItemNotes(ctx context.Context, propertyID uuid.UUID, roomID, itemID, notes string) (*Property, error) {
	return c.mutateItem(ctx, propertyID, roomID, itemID, func(item *ChecklistItem) error {
		item.Notes = notes
		return nil
	})
}

func (c *PropertyController) AddMedia(ctx context.Context, propertyID uuid.UUID, roomID, itemID, filename, dataURL string, watermarked bool) (*Property, error) {
	media, err := c.mediaService.NewMediaFile(filename, dataURL, watermarked)
	if err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	return c.mutateItem(ctx, propertyID, roomID, itemID, func(item *ChecklistItem) error {
		switch media.Type {
		case MediaTypeVideo:
			item.Videos = append(item.Videos, media)
		default:
			item.Photos = append(item.Photos, media)
		}
		return nil
	})
}

func (c *PropertyController) RemoveMedia(ctx context.Context, propertyID uuid.UUID, roomID, itemID, mediaID string) (*Property, error) {
	return c.mutateItem(ctx, propertyID, roomID, itemID, func(item *ChecklistItem) error {
		item.Photos = filterMedia(item.Photos, mediaID)
		item.Videos = filterMedia(item.Videos, mediaID)
		return nil
	})
}

// mutate applies fn to a deep copy of the cached property, recomputes every
// rollup, persists, and only then swaps the copy into the cache.
func (c *PropertyController) mutate(
	ctx context.Context,
	propertyID uuid.UUID,
	fn func(property *Property) error,
) (*Property, error) {
	property, err := c.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}

	if err := fn(property); err != nil {
		return nil, err
	}

	if err := c.UpsertProperty(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (c *PropertyController) mutateItem(
	ctx context.Context,
	propertyID uuid.UUID,
	roomID, itemID string,
	fn func(item *ChecklistItem) error,
) (*Property, error) {
	return c.mutate(ctx, propertyID, func(property *Property) error {
		room := property.Room(roomID)
		if room == nil {
			return database.ErrNotFound
		}

		item := room.Item(itemID)
		if item == nil {
			return database.ErrNotFound
		}

		if err := fn(item); err != nil {
			return err
		}

		room.Touch()
		return nil
	})
}

func (c *PropertyController) publishPropertyEvent(messageType events.MessageType, propertyID uuid.UUID) {
	err := c.eventBus.Publish(events.PROPERTY_CHANNEL, events.Event{
		Type: messageType,
		Data: map[string]any{"propertyId": propertyID.String()},
	})
	if err != nil {
		c.log.Warn("failed to publish property event", "type", messageType, "error", err)
	}
}

func validateForm(form PropertyFormData) error {
	missing := []string{}
	if strings.TrimSpace(form.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(form.TenantName) == "" {
		missing = append(missing, "tenantName")
	}
	if strings.TrimSpace(form.MoveOutDate) == "" {
		missing = append(missing, "moveOutDate")
	}

	if len(missing) > 0 {
		return errors.Join(ErrValidation, errors.New("missing required fields: "+strings.Join(missing, ", ")))
	}

	return nil
}

func filterMedia(media []MediaFile, mediaID string) []MediaFile {
	filtered := media[:0]
	for _, m := range media {
		if m.ID != mediaID {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
