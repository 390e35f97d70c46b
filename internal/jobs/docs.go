// Package jobs provides the scheduled background passes of the engine,
// built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. OrderAggregationJob - every 30 seconds: pulls eligible orders and groups them into consignments
// 2. DispatchPassJob - every 10 seconds: binds pending consignments to free, fresh drivers
// 3. UnreachableReclaimJob - every minute: reverts assignments whose driver went silent
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(aggregateHandler, dispatchHandler, reclaimHandler,
//		staleness, unreachableTimeout, metricsSet, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A pass that finds nothing to do is not an error; handlers return counts
// and the jobs feed them into the Prometheus counters.
package jobs
