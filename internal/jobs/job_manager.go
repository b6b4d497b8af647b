package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"communitydelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	retentionPurgeJob *RetentionPurgeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	purgeHandler commands.PurgeInactiveRecipientsCommandHandler,
	retention time.Duration,
	purgeSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		retentionPurgeJob: NewRetentionPurgeJob(purgeHandler, retention, purgeSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.retentionPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start retention purge job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retentionPurgeJob.Stop()
}
