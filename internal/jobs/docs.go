// Package jobs provides scheduled background tasks for the freight marketplace.
//
// Jobs are built on github.com/robfig/cron/v3 and log through a component-scoped slog
// logger.
//
// # Available Jobs
//
// RequestExpiryJob cancels Open and Bidding transport requests whose scheduled pickup
// time has passed, releasing their pending bids. It runs ExpireStaleRequestsCommand on
// the schedule given by REQUEST_EXPIRY_SCHEDULE (every minute by default).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, cfg.RequestExpirySchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Optimistic-concurrency conflicts are logged as warnings because the next sweep retries
// the same requests. Every other failure is logged as an error.
package jobs
