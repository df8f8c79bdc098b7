package models

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// DefaultNotificationDuration is how long a notification stays visible before
// auto-dismissal. A duration of 0 means persistent until dismissed.
const DefaultNotificationDuration = 5000 * time.Millisecond

// Notification is an ephemeral user-facing message. Never persisted.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Duration  time.Duration    `json:"duration"`
	CreatedAt time.Time        `json:"createdAt"`
}
