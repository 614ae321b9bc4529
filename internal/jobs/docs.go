// Package jobs provides background tasks around the delivery agents.
//
// # Available Jobs
//
// 1. ArchiveConfirmedOrdersJob - moves confirmed orders out of the dispatcher's live
// table into the archive on a cron schedule (github.com/robfig/cron/v3, seconds field
// enabled).
// 2. DemoScenario - has the customer request ORD001 and, one stagger later, ORD002.
//
// # Usage
//
//	archiveJob := jobs.NewArchiveConfirmedOrdersJob(archiveHandler, cfg.ArchiveSchedule, logger)
//	jobManager := jobs.NewJobManager(archiveJob, demo, logger)
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed archive pass is logged and leaves the live table untouched; the next
// pass retries the same orders.
package jobs
