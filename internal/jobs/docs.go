// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs use github.com/robfig/cron/v3 and are driven through JobManager:
//
//	jobManager := jobs.NewJobManager(expireHandler, "@every 1m", time.UTC, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// PendingExpiryJob cancels reservations that are still Pending after their
// scheduled start. Start times are civil times of the business location passed
// to NewJobManager, so "now" is taken from that zone's wall clock. Failed runs
// are logged and retried on the next tick.
package jobs
