package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/ports"
)

// ReportLocationCommandHandler applies a driver's location sample: updates
// the driver record, extends the delivery track while a consignment is in
// progress, and promotes PickedUp to InTransit on the first accepted
// sample after pickup.
type ReportLocationCommandHandler struct {
	uowFactory TrackingUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReportLocationCommandHandler creates the handler.
func NewReportLocationCommandHandler(
	uowFactory TrackingUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one sample. A sample not newer than the stored one
// returns errs.StaleSampleError and changes nothing; clients that batch
// and retry can post the same sample twice without harm.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drv, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err = drv.ReportLocation(command.Sample()); err != nil {
		return err
	}

	// An accepted sample proves the driver is reachable again. This is
	// the counterpart of the reclaim pass parking silent drivers; without
	// it a reclaimed driver could never rejoin the pool.
	drv.SetAvailable(true)

	var promoted *consignment.Consignment
	if drv.HasActiveConsignment() {
		promoted, err = h.recordProgress(ctx, uow, drv, command.Sample())
		if err != nil {
			return err
		}
	}

	if err = uow.DriverRepository().Update(ctx, drv); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishLocation(ctx, drv, command.Sample())
	if promoted != nil {
		h.publishStatus(ctx, promoted, command.Sample())
	}
	return nil
}

// recordProgress appends the sample to the delivery track when the active
// consignment is between pickup and a terminal state, and moves a just
// picked up consignment to InTransit. Returns the consignment when it was
// promoted, so the caller can publish the change after commit.
func (h ReportLocationCommandHandler) recordProgress(
	ctx context.Context,
	uow TrackingUoW,
	drv *driver.Driver,
	sample driver.LocationSample,
) (*consignment.Consignment, error) {
	cons, err := uow.ConsignmentRepository().Get(ctx, *drv.ActiveConsignment())
	if err != nil {
		return nil, err
	}

	var promoted *consignment.Consignment
	if cons.Status() == consignment.PickedUp {
		if err = cons.MarkInTransit(); err != nil {
			return nil, err
		}
		if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
			return nil, err
		}
		promoted = cons
	}

	if !cons.Status().RecordsProgress() {
		return promoted, nil
	}

	point, err := driver.NewTrackPoint(drv.ID(), cons.ID(), sample)
	if err != nil {
		return nil, err
	}

	return promoted, uow.TrackRepository().Append(ctx, point)
}

func (h ReportLocationCommandHandler) publishLocation(
	ctx context.Context,
	drv *driver.Driver,
	sample driver.LocationSample,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishLocation(ctx, ports.LocationReportedEvent{
		DriverID:      drv.ID(),
		ConsignmentID: drv.ActiveConsignment(),
		Point:         sample.Point(),
		Speed:         sample.Speed(),
		Heading:       sample.Heading(),
		ReportedAt:    sample.ReportedAt(),
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("location event not published",
			"driverId", drv.ID().String(), "error", err)
	}
}

func (h ReportLocationCommandHandler) publishStatus(
	ctx context.Context,
	cons *consignment.Consignment,
	sample driver.LocationSample,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: cons.ID(),
		DriverID:      cons.Driver(),
		OldStatus:     consignment.PickedUp,
		NewStatus:     cons.Status(),
		OccurredAt:    sample.ReportedAt(),
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("status event not published",
			"consignmentId", cons.ID().String(), "error", err)
	}
}
