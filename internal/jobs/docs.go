// Package jobs provides scheduled background tasks for the mover service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CargoAuditJob - Scans all movers and logs every mover whose current weight
// differs from the sum of its items, exceeds its weight limit, or whose cargo
// lists duplicate or unknown items. It is read-only.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cargoViolationsHandler, cfg.AuditSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six-field cron expressions with seconds. The audit defaults
// to "0 * * * * *", once a minute.
//
// # Error Handling
//
// - A failed audit pass is logged at error level and retried on the next tick
// - Violations are logged at warn level, one line per mover
package jobs
