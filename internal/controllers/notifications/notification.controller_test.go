package notifications_test

import (
	"testing"
	"time"

	"depositdefender/internal/controllers/notifications"
	"depositdefender/internal/events"
	"depositdefender/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *notifications.NotificationController {
	t.Helper()

	controller := notifications.New(events.New(nil))
	t.Cleanup(controller.Stop)

	return controller
}

func TestNotificationController_NotifyAndActive(t *testing.T) {
	controller := newController(t)

	controller.Success("Saved", "Inspection saved")
	controller.Error("Failed", "Could not reach storage")

	active := controller.Active()
	require.Len(t, active, 2)

	assert.Equal(t, models.NotificationSuccess, active[0].Type)
	assert.Equal(t, models.NotificationError, active[1].Type)
	assert.NotEmpty(t, active[0].ID)
	assert.Equal(t, models.DefaultNotificationDuration, active[0].Duration)
}

func TestNotificationController_Dismiss(t *testing.T) {
	controller := newController(t)

	controller.Info("Heads up", "Something happened")
	active := controller.Active()
	require.Len(t, active, 1)

	assert.True(t, controller.Dismiss(active[0].ID))
	assert.Empty(t, controller.Active())

	t.Run("dismissing twice is a no-op", func(t *testing.T) {
		assert.False(t, controller.Dismiss(active[0].ID))
	})

	t.Run("dismissing unknown id", func(t *testing.T) {
		assert.False(t, controller.Dismiss("missing"))
	})
}

func TestNotificationController_TTLExpiry(t *testing.T) {
	controller := newController(t)

	controller.Notify(models.NotificationInfo, "Blink", "Gone in a moment", 30*time.Millisecond)
	require.Len(t, controller.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(controller.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationController_PersistentNotification(t *testing.T) {
	controller := newController(t)

	// Zero duration pins the notification until dismissed.
	controller.Notify(models.NotificationError, "Storage Error", "Device storage unavailable", 0)

	time.Sleep(50 * time.Millisecond)
	active := controller.Active()
	require.Len(t, active, 1)
	assert.Equal(t, time.Duration(0), active[0].Duration)

	assert.True(t, controller.Dismiss(active[0].ID))
	assert.Empty(t, controller.Active())
}

func TestNotificationController_NegativeDurationFallsBack(t *testing.T) {
	controller := newController(t)

	controller.Notify(models.NotificationWarning, "Odd", "Negative duration", -time.Second)

	active := controller.Active()
	require.Len(t, active, 1)
	assert.Equal(t, models.DefaultNotificationDuration, active[0].Duration)
}
