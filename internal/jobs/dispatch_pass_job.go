package jobs

import (
	"context"
	"log/slog"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DispatchPassJob periodically matches pending consignments with free,
// fresh drivers.
type DispatchPassJob struct {
	handler   commands.DispatchConsignmentsCommandHandler
	staleness time.Duration
	metrics   *metrics.Set
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDispatchPassJob creates the dispatch job. Drivers whose last sample
// is older than staleness are excluded from each pass.
func NewDispatchPassJob(
	handler commands.DispatchConsignmentsCommandHandler,
	staleness time.Duration,
	set *metrics.Set,
	logger *slog.Logger,
) *DispatchPassJob {
	return &DispatchPassJob{
		handler:   handler,
		staleness: staleness,
		metrics:   set,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "dispatch_pass_job"),
	}
}

// Start schedules the dispatch pass every 10 seconds.
func (j *DispatchPassJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchConsignmentsCommand(time.Now().UTC(), j.staleness)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch command rejected", "error", err)
			return
		}

		assigned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch pass failed", "error", err)
			return
		}

		j.metrics.ConsignmentsAssigned.Add(float64(assigned))
		if assigned > 0 {
			j.logger.InfoContext(ctx, "Dispatch pass completed", "assigned", assigned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch pass job started (running every 10 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchPassJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch pass job stopped")
}
