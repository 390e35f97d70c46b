package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/metrics"
)

// JobManager coordinates the scheduled background passes of the engine.
type JobManager struct {
	aggregationJob *OrderAggregationJob
	dispatchJob    *DispatchPassJob
	reclaimJob     *UnreachableReclaimJob
}

// NewJobManager creates the manager with all passes wired to their
// handlers and tunables.
func NewJobManager(
	aggregateHandler commands.AggregateOrdersCommandHandler,
	dispatchHandler commands.DispatchConsignmentsCommandHandler,
	reclaimHandler commands.ReclaimUnreachableCommandHandler,
	staleness time.Duration,
	unreachableTimeout time.Duration,
	set *metrics.Set,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		aggregationJob: NewOrderAggregationJob(aggregateHandler, set, logger),
		dispatchJob:    NewDispatchPassJob(dispatchHandler, staleness, set, logger),
		reclaimJob:     NewUnreachableReclaimJob(reclaimHandler, unreachableTimeout, set, logger),
	}
}

// StartAll starts all scheduled jobs. If one fails to start, jobs started
// earlier are stopped again.
func (jm *JobManager) StartAll() error {
	if err := jm.aggregationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order aggregation job: %w", err)
	}

	if err := jm.dispatchJob.Start(); err != nil {
		jm.aggregationJob.Stop()
		return fmt.Errorf("failed to start dispatch pass job: %w", err)
	}

	if err := jm.reclaimJob.Start(); err != nil {
		jm.dispatchJob.Stop()
		jm.aggregationJob.Stop()
		return fmt.Errorf("failed to start unreachable reclaim job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reclaimJob.Stop()
	jm.dispatchJob.Stop()
	jm.aggregationJob.Stop()
}
