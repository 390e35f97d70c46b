package jobs

import (
	"context"
	"log/slog"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/metrics"

	"github.com/robfig/cron/v3"
)

// OrderAggregationJob periodically pulls eligible orders from the feed and
// groups them into pending consignments.
type OrderAggregationJob struct {
	handler commands.AggregateOrdersCommandHandler
	metrics *metrics.Set
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAggregationJob creates the aggregation job.
func NewOrderAggregationJob(
	handler commands.AggregateOrdersCommandHandler,
	set *metrics.Set,
	logger *slog.Logger,
) *OrderAggregationJob {
	return &OrderAggregationJob{
		handler: handler,
		metrics: set,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_aggregation_job"),
	}
}

// Start schedules the aggregation pass every 30 seconds.
func (j *OrderAggregationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAggregateOrdersCommand(time.Now().UTC())

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order aggregation pass failed", "error", err)
			return
		}

		j.metrics.ConsignmentsCreated.Add(float64(len(result.ConsignmentIDs)))
		j.metrics.OrdersRejected.Add(float64(len(result.Rejected)))

		for _, rejected := range result.Rejected {
			j.logger.WarnContext(ctx, "Order rejected during aggregation",
				"orderId", rejected.OrderID, "reason", rejected.Reason)
		}

		if len(result.ConsignmentIDs) > 0 {
			j.logger.InfoContext(ctx, "Order aggregation pass completed",
				"consignments", len(result.ConsignmentIDs))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order aggregation job started (running every 30 seconds)")
	return nil
}

// Stop stops the aggregation job.
func (j *OrderAggregationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order aggregation job stopped")
}
