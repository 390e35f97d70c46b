package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
	"consignment/internal/core/ports"
)

// ConfirmDeliveryCommandHandler completes one delivery stop. When the
// final stop completes, the terminal transition, the driver release and
// the settlement row commit in the same transaction.
type ConfirmDeliveryCommandHandler struct {
	uowFactory TerminalUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmDeliveryCommandHandler creates the handler.
func NewConfirmDeliveryCommandHandler(
	uowFactory TerminalUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle completes the stop. Completing the final stop of a consignment
// with cash due requires the collected flag; the aggregate rejects the
// call otherwise and the consignment stays InTransit.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) error {
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

	err = cons.ConfirmStopDelivery(
		command.DriverID(), command.StopID(), command.CODCollected(), command.ProofRef(), command.At())
	if err != nil {
		return err
	}

	delivered := before != consignment.Delivered && cons.Status() == consignment.Delivered
	if delivered {
		if err = h.closeOut(ctx, uow, cons); err != nil {
			return err
		}
	}

	if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if delivered {
		h.publish(ctx, cons, before, command)
	}
	return nil
}

// closeOut releases the driver and writes the reconciliation record.
func (h ConfirmDeliveryCommandHandler) closeOut(
	ctx context.Context,
	uow TerminalUoW,
	cons *consignment.Consignment,
) error {
	drv, err := uow.DriverRepository().Get(ctx, *cons.Driver())
	if err != nil {
		return err
	}

	drv.ReleaseConsignment()
	if err = uow.DriverRepository().Update(ctx, drv); err != nil {
		return err
	}

	collected := int64(0)
	if cons.CODCollected() {
		collected = cons.CODAmount()
	}

	record, err := ledger.NewSettlementRecord(
		kernel.NewUUID(), cons.ID(), ledger.OutcomeDelivered,
		cons.CODAmount(), collected, cons.ProofRef(), nil, *cons.DeliveredAt())
	if err != nil {
		return err
	}

	return uow.SettlementRepository().Add(ctx, record)
}

func (h ConfirmDeliveryCommandHandler) publish(
	ctx context.Context,
	cons *consignment.Consignment,
	before consignment.Status,
	command ConfirmDeliveryCommand,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: cons.ID(),
		DriverID:      &command.driverID,
		OldStatus:     before,
		NewStatus:     cons.Status(),
		OccurredAt:    command.At(),
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("status event not published",
			"consignmentId", cons.ID().String(), "error", err)
	}
}
