package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/ports"
)

// ConfirmPickupCommandHandler moves a consignment to PickedUp. The guard
// that only the bound driver may confirm lives in the aggregate; the
// handler's job is the transaction and the post-commit event.
type ConfirmPickupCommandHandler struct {
	uowFactory ConsignmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmPickupCommandHandler creates the handler.
func NewConfirmPickupCommandHandler(
	uowFactory ConsignmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle confirms the pickup. The status is read inside the writing
// transaction, so a cancel committed a moment earlier makes this call
// fail with errs.ConflictError. A repeated confirmation is a no-op that
// keeps the original pickup timestamp.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, command ConfirmPickupCommand) error {
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
	already := before == consignment.PickedUp

	if err = cons.ConfirmPickup(command.DriverID(), command.At()); err != nil {
		return err
	}

	if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !already {
		h.publish(ctx, cons, before, command)
	}
	return nil
}

func (h ConfirmPickupCommandHandler) publish(
	ctx context.Context,
	cons *consignment.Consignment,
	before consignment.Status,
	command ConfirmPickupCommand,
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
