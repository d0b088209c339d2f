// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the order lifecycle.
//
// # Available Jobs
//
// 1. PendingOrderReminderJob - Runs hourly to re-notify sellers about orders
// left in pending for more than 24 hours
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(remindPendingOrdersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder sweep is read-only; a failed sweep is logged and retried on
// the next tick. Reminders go through the notification queue, so a slow
// mail transport cannot stall the scheduler.
package jobs
