package services_test

import (
	"context"
	"sync/atomic"
	"testing"

	"depositdefender/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	schedule services.Schedule
	runs     atomic.Int64
}

func (j *countingJob) Name() string                { return j.name }
func (j *countingJob) Schedule() services.Schedule { return j.schedule }
func (j *countingJob) Execute(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestSchedulerService_Lifecycle(t *testing.T) {
	scheduler := services.NewSchedulerService()
	ctx := context.Background()

	t.Run("empty scheduler refuses to start", func(t *testing.T) {
		require.NoError(t, scheduler.Start(ctx))
		assert.False(t, scheduler.IsRunning())
	})

	t.Run("starts with jobs registered", func(t *testing.T) {
		require.NoError(t, scheduler.AddJob(&countingJob{name: "hourly", schedule: services.Hourly}))
		require.NoError(t, scheduler.AddJob(&countingJob{name: "daily", schedule: services.Daily}))

		require.NoError(t, scheduler.Start(ctx))
		assert.True(t, scheduler.IsRunning())

		// Starting again is a no-op.
		require.NoError(t, scheduler.Start(ctx))
		assert.True(t, scheduler.IsRunning())
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		require.NoError(t, scheduler.Stop(ctx))
		assert.False(t, scheduler.IsRunning())
		require.NoError(t, scheduler.Stop(ctx))
	})
}
