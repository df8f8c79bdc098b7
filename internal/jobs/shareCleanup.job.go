package jobs

import (
	"context"

	"depositdefender/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// ShareCleanupJob sweeps expired shares on a schedule. The sweep is a
// maintenance convenience: expired shares already resolve as not-found, this
// just reclaims the rows.
type ShareCleanupJob struct {
	sharingService *services.SharingService
	log            logger.Logger
}

func NewShareCleanupJob(sharingService *services.SharingService) *ShareCleanupJob {
	return &ShareCleanupJob{
		sharingService: sharingService,
		log:            logger.New("shareCleanupJob"),
	}
}

func (j *ShareCleanupJob) Name() string {
	return "share-cleanup"
}

func (j *ShareCleanupJob) Schedule() services.Schedule {
	return services.Hourly
}

func (j *ShareCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	removed, err := j.sharingService.CleanupExpired(ctx)
	if err != nil {
		return log.Err("share cleanup sweep failed", err)
	}

	if removed > 0 {
		log.Info("Share cleanup sweep completed", "removed", removed)
	}

	return nil
}
