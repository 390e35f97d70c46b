package jobs

import (
	"context"
	"log/slog"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/metrics"

	"github.com/robfig/cron/v3"
)

// UnreachableReclaimJob reverts assignments whose driver has gone silent
// so the consignments become dispatchable again.
type UnreachableReclaimJob struct {
	handler commands.ReclaimUnreachableCommandHandler
	timeout time.Duration
	metrics *metrics.Set
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewUnreachableReclaimJob creates the reclaim job. A driver is considered
// unreachable after timeout without an accepted location sample.
func NewUnreachableReclaimJob(
	handler commands.ReclaimUnreachableCommandHandler,
	timeout time.Duration,
	set *metrics.Set,
	logger *slog.Logger,
) *UnreachableReclaimJob {
	return &UnreachableReclaimJob{
		handler: handler,
		timeout: timeout,
		metrics: set,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "unreachable_reclaim_job"),
	}
}

// Start schedules the reclaim pass every minute.
func (j *UnreachableReclaimJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReclaimUnreachableCommand(time.Now().UTC(), j.timeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reclaim command rejected", "error", err)
			return
		}

		reclaimed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Reclaim pass failed", "error", err)
			return
		}

		j.metrics.ConsignmentsReclaimed.Add(float64(reclaimed))
		if reclaimed > 0 {
			j.logger.WarnContext(ctx, "Reclaimed consignments from unreachable drivers",
				"reclaimed", reclaimed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unreachable reclaim job started (running every minute)")
	return nil
}

// Stop stops the reclaim job.
func (j *UnreachableReclaimJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unreachable reclaim job stopped")
}
