// Package jobs provides scheduled background tasks for the restaurant.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds-precision specs.
//
// # Available Jobs
//
// OrderClosingJob closes orders that have been Delivered for longer than the
// configured window and have no feedback awaiting adjudication. Closing
// records completed-order accounting and re-evaluates VIP status.
//
// # Usage
//
//	closing := jobs.NewOrderClosingJob(&closeHandler, "0 * * * * *", 24*time.Hour, 30*time.Second, logger)
//
//	jobManager := jobs.NewJobManager()
//	jobManager.Add("order closing", closing)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep closes each order in its own transaction. Orders that fail are
// logged and retried on the next tick; overlapping ticks are skipped.
package jobs
