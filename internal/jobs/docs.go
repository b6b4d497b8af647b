// Package jobs provides scheduled background tasks for the coordination
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path cannot do.
//
// # Available Jobs
//
// 1. RetentionPurgeJob - Scrubs encrypted contact data from recipient
// accounts that have been deleted or inactive past the retention window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(purgeHandler, retention, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The purge schedule is a standard five-field cron expression supplied by
// configuration; the default runs once a day. The purge is idempotent, so a
// missed or doubled run does not corrupt anything.
//
// # Error Handling
//
// Purge failures are logged and retried on the next scheduled run. A failed
// job start stops any already running jobs.
package jobs
