package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/ports"
)

// ReclaimUnreachableCommandHandler returns consignments held by silent
// drivers to the pending pool. One transaction per consignment: the
// consignment reverts to Pending and the driver is unbound and parked
// unavailable until its next location report.
type ReclaimUnreachableCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReclaimUnreachableCommandHandler creates the handler.
func NewReclaimUnreachableCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReclaimUnreachableCommandHandler {
	return ReclaimUnreachableCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle scans the assigned consignments and reclaims those whose driver
// has been silent past the timeout. Only Assigned consignments qualify: a
// driver that already confirmed pickup holds the goods, so reverting to
// Pending would dispatch a second driver to a collected consignment.
// A consignment whose transaction fails is logged and left for the next
// sweep. Returns the number of consignments reclaimed.
func (h ReclaimUnreachableCommandHandler) Handle(ctx context.Context, command ReclaimUnreachableCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.assignedIDs(ctx)
	if err != nil {
		return 0, err
	}

	reclaimed := 0
	for _, id := range candidates {
		done, reclaimErr := h.reclaimOne(ctx, id, command)
		if reclaimErr != nil {
			if ctx.Err() != nil {
				return reclaimed, ctx.Err()
			}
			if h.logger != nil {
				h.logger.Warn("consignment not reclaimed this sweep",
					"consignmentId", id.String(), "error", reclaimErr)
			}
			continue
		}
		if done {
			reclaimed++
		}
	}

	return reclaimed, nil
}

func (h ReclaimUnreachableCommandHandler) assignedIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assigned, err := uow.ConsignmentRepository().GetAllAssigned(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(assigned))
	for _, cons := range assigned {
		ids = append(ids, cons.ID())
	}

	return ids, nil
}

func (h ReclaimUnreachableCommandHandler) reclaimOne(
	ctx context.Context,
	id kernel.UUID,
	command ReclaimUnreachableCommand,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cons, err := uow.ConsignmentRepository().Get(ctx, id)
	if err != nil {
		return false, err
	}
	if cons.Status() != consignment.Assigned || cons.Driver() == nil {
		// Picked up, cancelled or already reclaimed since the scan.
		return false, nil
	}

	drv, err := uow.DriverRepository().Get(ctx, *cons.Driver())
	if err != nil {
		return false, err
	}

	if drv.LastSample() != nil && drv.LastSample().AgeAt(command.Now()) <= command.Timeout() {
		return false, nil
	}

	before := cons.Status()
	if err = cons.Unassign(); err != nil {
		return false, err
	}

	drv.ReleaseConsignment()
	drv.SetAvailable(false)

	if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
		return false, err
	}

	if err = uow.DriverRepository().Update(ctx, drv); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if h.logger != nil {
		h.logger.Info("consignment reclaimed from unreachable driver",
			"consignmentId", cons.ID().String(), "driverId", drv.ID().String())
	}

	h.publish(ctx, cons, before, command)
	return true, nil
}

func (h ReclaimUnreachableCommandHandler) publish(
	ctx context.Context,
	cons *consignment.Consignment,
	before consignment.Status,
	command ReclaimUnreachableCommand,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: cons.ID(),
		DriverID:      nil,
		OldStatus:     before,
		NewStatus:     cons.Status(),
		OccurredAt:    command.Now(),
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("status event not published",
			"consignmentId", cons.ID().String(), "error", err)
	}
}
