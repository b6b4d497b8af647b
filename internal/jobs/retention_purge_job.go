package jobs

import (
	"context"
	"log/slog"
	"time"

	"communitydelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RetentionPurgeJob periodically scrubs contact data from recipients whose
// accounts have been inactive past the retention window. The purge is
// idempotent, so an overlapping or repeated run is harmless.
type RetentionPurgeJob struct {
	handler   commands.PurgeInactiveRecipientsCommandHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetentionPurgeJob creates the purge job. The schedule is a standard
// five-field cron expression; retention is how long a deleted or inactive
// account keeps its contact data.
func NewRetentionPurgeJob(
	handler commands.PurgeInactiveRecipientsCommandHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *RetentionPurgeJob {
	return &RetentionPurgeJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "retention_purge_job"),
	}
}

// Start schedules the purge to run on the configured cron expression.
func (j *RetentionPurgeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention purge job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop stops the purge job.
func (j *RetentionPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Retention purge job stopped")
}

func (j *RetentionPurgeJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewPurgeInactiveRecipientsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention purge job misconfigured", "error", err)
		return
	}

	purged, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention purge job failed", "error", err)
		return
	}

	if purged > 0 {
		j.logger.InfoContext(ctx, "Purged inactive recipient contact data", "count", purged)
	}
}
