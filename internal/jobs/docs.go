// Package jobs provides scheduled maintenance tasks for the order desk.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SessionCleanupJob - Runs every minute to delete session bindings past their TTL
// 2. RateLimitSweepJob - Runs every minute to drop idle clients from the in-memory rate limiter
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(purgeSessionsHandler, limiters, time.Now, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed purge is logged and retried on the next tick. Expired bindings are
// rejected on use regardless, so a missed purge only delays storage cleanup.
package jobs
