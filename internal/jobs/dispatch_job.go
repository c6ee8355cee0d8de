package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"lastmile/internal/core/application/usecases/commands"
)

// DispatchJob runs the batch dispatch on a fixed cadence, pairing the
// ready backlog with available drivers.
type DispatchJob struct {
	handler commands.AssignReadyOrdersCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates the scheduled dispatch job. spec is a six-field
// cron expression with a seconds column, e.g. "*/30 * * * * *".
func NewDispatchJob(handler commands.AssignReadyOrdersCommandHandler, spec string, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start schedules the dispatch runs.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()

		result, err := j.handler.Handle(ctx, commands.NewAssignReadyOrdersCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch run failed", "error", err)
			return
		}

		// An empty backlog is the normal case between meal rushes; only
		// runs that did something are worth a log line.
		if result.AssignedCount > 0 || result.UnassignedCount > 0 {
			j.logger.InfoContext(ctx, "Dispatch run completed",
				"assigned", result.AssignedCount,
				"unassigned", result.UnassignedCount,
				"avg_orders_per_driver", result.AvgOrdersPerDriver,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "spec", j.spec)
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
