package notifications

import (
	"context"
	"sort"
	"time"

	"depositdefender/internal/events"

	. "depositdefender/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

type NotificationControllerInterface interface {
	Notify(notificationType NotificationType, title, message string, duration time.Duration)
	Dismiss(id string) bool
	Active() []Notification
	Stop()
}

// NotificationController holds the active notification set. Entries expire on
// their own TTL; a duration of 0 pins the entry until it is dismissed.
type NotificationController struct {
	cache    *ttlcache.Cache[string, Notification]
	eventBus *events.EventBus
	log      logger.Logger
}

func New(eventBus *events.EventBus) *NotificationController {
	log := logger.New("notificationController")

	cache := ttlcache.New(
		ttlcache.WithTTL[string, Notification](DefaultNotificationDuration),
		ttlcache.WithDisableTouchOnHit[string, Notification](),
	)

	controller := &NotificationController{
		cache:    cache,
		eventBus: eventBus,
		log:      log,
	}

	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, Notification]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		controller.publish(events.NOTIFICATION_EXPIRED, item.Value())
	})

	go cache.Start()

	return controller
}

// Notify registers a notification and announces it on the event bus. A
// negative duration falls back to the default; zero means persistent.
func (c *NotificationController) Notify(
	notificationType NotificationType,
	title, message string,
	duration time.Duration,
) {
	if duration < 0 {
		duration = DefaultNotificationDuration
	}

	ttl := duration
	if duration == 0 {
		ttl = ttlcache.NoTTL
	}

	notification := Notification{
		ID:        uuid.New().String(),
		Type:      notificationType,
		Title:     title,
		Message:   message,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
	}

	c.cache.Set(notification.ID, notification, ttl)
	c.publish(events.NOTIFICATION_ADDED, notification)
}

func (c *NotificationController) Success(title, message string) {
	c.Notify(NotificationSuccess, title, message, DefaultNotificationDuration)
}

func (c *NotificationController) Error(title, message string) {
	c.Notify(NotificationError, title, message, DefaultNotificationDuration)
}

func (c *NotificationController) Warning(title, message string) {
	c.Notify(NotificationWarning, title, message, DefaultNotificationDuration)
}

func (c *NotificationController) Info(title, message string) {
	c.Notify(NotificationInfo, title, message, DefaultNotificationDuration)
}

// Dismiss removes a notification before its TTL elapses. Dismissing an
// unknown or already expired id is a no-op.
func (c *NotificationController) Dismiss(id string) bool {
	item := c.cache.Get(id)
	if item == nil {
		return false
	}

	notification := item.Value()
	c.cache.Delete(id)
	c.publish(events.NOTIFICATION_DISMISSED, notification)

	return true
}

// Active returns the live notifications, oldest first.
func (c *NotificationController) Active() []Notification {
	items := c.cache.Items()

	notifications := make([]Notification, 0, len(items))
	for _, item := range items {
		notifications = append(notifications, item.Value())
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.Before(notifications[j].CreatedAt)
	})

	return notifications
}

func (c *NotificationController) Stop() {
	c.cache.Stop()
}

func (c *NotificationController) publish(messageType events.MessageType, notification Notification) {
	err := c.eventBus.Publish(events.NOTIFICATION_CHANNEL, events.Event{
		Type: messageType,
		Data: map[string]any{
			"id":      notification.ID,
			"type":    string(notification.Type),
			"title":   notification.Title,
			"message": notification.Message,
		},
	})
	if err != nil {
		c.log.Warn("failed to publish notification event", "type", messageType, "error", err)
	}
}
