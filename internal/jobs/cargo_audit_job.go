package jobs

import (
	"context"
	"log/slog"

	"magicmover/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultCargoAuditSchedule runs the audit at second 0 of every minute.
const DefaultCargoAuditSchedule = "0 * * * * *"

type cargoViolationsHandler interface {
	Handle(ctx context.Context, query queries.GetCargoViolationsQuery) ([]queries.CargoViolationView, error)
}

// CargoAuditJob periodically checks that every mover's stored weight matches
// its cargo and stays within its limit. Findings are only logged.
type CargoAuditJob struct {
	handler  cargoViolationsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCargoAuditJob creates the job. schedule is a six-field cron expression
// (with seconds); empty means DefaultCargoAuditSchedule.
func NewCargoAuditJob(handler cargoViolationsHandler, schedule string, logger *slog.Logger) *CargoAuditJob {
	if schedule == "" {
		schedule = DefaultCargoAuditSchedule
	}
	return &CargoAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "cargo_audit_job"),
	}
}

// Start registers the audit with the scheduler and starts it.
func (j *CargoAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cargo audit job started", "schedule", j.schedule)
	return nil
}

// Run performs one audit pass and returns the number of movers in violation.
func (j *CargoAuditJob) Run(ctx context.Context) int {
	violations, err := j.handler.Handle(ctx, queries.NewGetCargoViolationsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Cargo audit job failed", "error", err)
		return 0
	}

	for _, v := range violations {
		j.logger.WarnContext(ctx, "Mover cargo violates invariants",
			"mover_id", v.MoverID.String(),
			"version", v.Version,
			"error", v.Err)
	}
	return len(violations)
}

// Stop stops scheduling and waits for a running audit to finish.
func (j *CargoAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cargo audit job stopped")
}
