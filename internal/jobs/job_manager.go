// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only job today is the stale shipment
// monitor, which reports deliveries stuck in SHIPPED; JobManager exists so
// the composition root keeps a single start/stop surface as jobs are added.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"delivery/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleShipmentJob *StaleShipmentJob
}

// NewJobManager creates a job manager with all required jobs wired.
func NewJobManager(
	getByStatusHandler queries.GetDeliveriesByStatusQueryHandler,
	staleThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleShipmentJob: NewStaleShipmentJob(getByStatusHandler, staleThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.staleShipmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale shipment job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleShipmentJob.Stop()
}
