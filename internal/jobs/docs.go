// Package jobs provides scheduled background tasks for the ledger service.
//
// Jobs are built on github.com/robfig/cron/v3 with second resolution
// schedules.
//
// # Available Jobs
//
// TripStatusJob reads the ledger slot on a schedule and publishes the status
// of the active trip to a gauge, or clears the gauge when the slot is empty.
//
// # Usage
//
//	statusJob := jobs.NewTripStatusJob(uowFactory, ledgerMetrics, "*/15 * * * * *", logger)
//	jobManager := jobs.NewJobManager(statusJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty slot is not an error. Storage failures are logged and the next
// tick tries again.
package jobs
