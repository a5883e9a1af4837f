// Package jobs provides scheduled background tasks for the activation service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six field syntax with
// seconds) and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(countOrdersHandler, m, cfg.StatsSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OrderStatsJob counts orders per derived stage (new, awaiting_code,
// with_code, expired) and publishes them on the activation_orders gauge.
// Stages move with the clock, so the counts are recomputed on every tick
// instead of being tracked on transitions.
//
// Failed runs are logged and retried on the next tick.
package jobs
