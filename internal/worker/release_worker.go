package worker

import (
	"context"

	"github.com/slabworks/cardstand/internal/catalog"
	"github.com/slabworks/cardstand/internal/logger"
)

// ReleaseExpiredJob sweeps lapsed reservations back to available. It is
// the durable backstop behind the lazy reads: even if nothing ever
// touches a lapsed card, the sweep rewrites the row within one interval.
type ReleaseExpiredJob struct {
	catalogSvc catalog.Service
}

// NewReleaseExpiredJob creates a sweep job for the scheduler
func NewReleaseExpiredJob(catalogSvc catalog.Service) *ReleaseExpiredJob {
	return &ReleaseExpiredJob{catalogSvc: catalogSvc}
}

// Process runs one sweep
func (j *ReleaseExpiredJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSweepStarting)

	released, err := j.catalogSvc.ReleaseExpired(ctx)
	if err != nil {
		return err
	}

	if released > 0 {
		log.Info(LogMsgSweepCompleted, "released", released)
	}
	return nil
}
