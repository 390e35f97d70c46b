package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/ports"
)

// CancelConsignmentCommandHandler applies the operator override. If a
// driver was bound, the unbinding commits with the cancellation.
type CancelConsignmentCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelConsignmentCommandHandler creates the handler.
func NewCancelConsignmentCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelConsignmentCommandHandler {
	return CancelConsignmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle cancels the consignment. Cancelling an already cancelled
// consignment is a no-op; cancelling a delivered or failed one returns
// errs.ConflictError. A driver pickup confirmation racing this cancel
// loses: it re-reads the status inside its own transaction and conflicts.
func (h CancelConsignmentCommandHandler) Handle(ctx context.Context, command CancelConsignmentCommand) error {
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

	cons, err := uow.ConsignmentRepository().Get(ctx, command.ConsignmentID())
	if err != nil {
		return err
	}

	before := cons.Status()
	already := before == consignment.Cancelled
	hadDriver := cons.Driver() != nil

	if err = cons.Cancel(command.Reason()); err != nil {
		return err
	}

	if already {
		return uow.Rollback(ctx)
	}

	if hadDriver {
		drv, drvErr := uow.DriverRepository().Get(ctx, *cons.Driver())
		if drvErr != nil {
			return drvErr
		}

		drv.ReleaseConsignment()
		if drvErr = uow.DriverRepository().Update(ctx, drv); drvErr != nil {
			return drvErr
		}
	}

	if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, cons, before, command)
	return nil
}

func (h CancelConsignmentCommandHandler) publish(
	ctx context.Context,
	cons *consignment.Consignment,
	before consignment.Status,
	command CancelConsignmentCommand,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: cons.ID(),
		DriverID:      cons.Driver(),
		OldStatus:     before,
		NewStatus:     cons.Status(),
		OccurredAt:    command.At(),
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("status event not published",
			"consignmentId", cons.ID().String(), "error", err)
	}
}
