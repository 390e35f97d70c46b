package commands

import (
	"context"
	"log/slog"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
	"consignment/internal/core/ports"
)

// ReportFailureCommandHandler moves a consignment to Failed, releases the
// driver and writes the failure's settlement record, all in one
// transaction.
type ReportFailureCommandHandler struct {
	uowFactory TerminalUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewReportFailureCommandHandler creates the handler.
func NewReportFailureCommandHandler(
	uowFactory TerminalUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReportFailureCommandHandler {
	return ReportFailureCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle records the failure. A duplicate report is a no-op that keeps the
// original reason and writes no second ledger row.
func (h ReportFailureCommandHandler) Handle(ctx context.Context, command ReportFailureCommand) error {
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
	already := before == consignment.Failed

	if err = cons.Fail(command.DriverID(), command.Reason()); err != nil {
		return err
	}

	if already {
		return uow.Rollback(ctx)
	}

	drv, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	drv.ReleaseConsignment()
	if err = uow.DriverRepository().Update(ctx, drv); err != nil {
		return err
	}

	reason := command.Reason()
	record, err := ledger.NewSettlementRecord(
		kernel.NewUUID(), cons.ID(), ledger.OutcomeFailed,
		cons.CODAmount(), command.CODCollected(), nil, &reason, command.At())
	if err != nil {
		return err
	}

	if err = uow.SettlementRepository().Add(ctx, record); err != nil {
		return err
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

func (h ReportFailureCommandHandler) publish(
	ctx context.Context,
	cons *consignment.Consignment,
	before consignment.Status,
	command ReportFailureCommand,
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
