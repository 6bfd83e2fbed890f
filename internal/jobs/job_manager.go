package jobs

import (
	"fmt"
	"log/slog"

	"stateflow/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleItemsJob *StaleItemsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	staleItemsHandler queries.GetStaleItemsQueryHandler,
	staleItemsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleItemsJob: NewStaleItemsJob(staleItemsHandler, staleItemsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleItemsJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale items job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleItemsJob.Stop()
}
