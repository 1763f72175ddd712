// Package jobs provides scheduled background tasks for the import brokerage.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the brokerage service.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Re-verifies pending payments with the payment
// provider on a configurable schedule, settling or failing stale attempts.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, "0 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Reconciliation logs run-level failures; per-payment provider errors are
// handled inside the command handler, which skips the payment and retries it
// on the next run.
package jobs
