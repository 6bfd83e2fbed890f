// Package jobs provides scheduled background tasks, implemented as
// cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleItemsJob - periodically scans for items that have outstayed their
// current state's configured time limit and logs them for operator
// attention. The job only detects: a stale item can no longer transition
// (the engine rejects its attempts with a timeout), so recovery is a manual
// operation, not something the watchdog can do on the item's behalf.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleItemsHandler, cfg.StaleItemsSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
