// Package jobs provides scheduled background tasks for the dispatch
// core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DispatchJob - Runs on a configurable cadence to pair ready orders
// with available drivers through the batch dispatch command.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignReadyOrdersHandler, "*/30 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatch cadence comes from configuration as a six-field cron
// expression with a seconds column. Dispatch is idempotent across runs:
// an order the planner could not pair stays ready and is retried on the
// next tick.
//
// # Error Handling
//
// Dispatch run failures are logged and the job keeps its schedule; an
// empty backlog is a normal outcome, not an error.
package jobs
