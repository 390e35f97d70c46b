package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
)

// DispatchConsignmentsCommandHandler runs one matcher pass. Each pending
// consignment is handled in its own transaction: state is re-read inside
// it, so concurrent passes are safe. The loser of a race simply sees the
// consignment no longer pending and skips it.
type DispatchConsignmentsCommandHandler struct {
	uowFactory DispatchUoWFactory
	matcher    services.DispatchMatcher
	geo        ports.GeoProvider
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewDispatchConsignmentsCommandHandler creates the handler. The geo
// provider may be nil; matching then relies on the straight-line metric
// alone.
func NewDispatchConsignmentsCommandHandler(
	uowFactory DispatchUoWFactory,
	matcher services.DispatchMatcher,
	geo ports.GeoProvider,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DispatchConsignmentsCommandHandler {
	return DispatchConsignmentsCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		geo:        geo,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle dispatches pending consignments oldest-first. A pass with no free
// fresh drivers is not an error; unmatched consignments stay pending for
// the next pass. A consignment whose transaction fails is logged and
// skipped, it stays pending and the pass moves on to the next one.
// Returns the number of assignments made.
func (h DispatchConsignmentsCommandHandler) Handle(
	ctx context.Context,
	command DispatchConsignmentsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	pendingIDs, err := h.pendingIDs(ctx)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, id := range pendingIDs {
		matched, dispatchErr := h.dispatchOne(ctx, id, command)
		if dispatchErr != nil {
			if ctx.Err() != nil {
				return assigned, ctx.Err()
			}
			if h.logger != nil {
				h.logger.Warn("consignment skipped this pass",
					"consignmentId", id.String(), "error", dispatchErr)
			}
			continue
		}
		if matched {
			assigned++
		}
	}

	return assigned, nil
}

// pendingIDs snapshots the pending set in a short read transaction. Each
// consignment is re-read later inside its own writing transaction.
func (h DispatchConsignmentsCommandHandler) pendingIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.ConsignmentRepository().GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(pending))
	for _, cons := range pending {
		ids = append(ids, cons.ID())
	}

	return ids, nil
}

func (h DispatchConsignmentsCommandHandler) dispatchOne(
	ctx context.Context,
	id kernel.UUID,
	command DispatchConsignmentsCommand,
) (bool, error) {
	cutoff := command.Now().Add(-command.Staleness())

	// Road distances come from the provider outside the writing
	// transaction; external calls never run with a transaction open.
	overrides := h.roadDistances(ctx, id, cutoff)

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
	if cons.Status() != consignment.Pending {
		// Another pass got here first.
		return false, nil
	}

	drivers, err := uow.DriverRepository().GetAllFreeFresh(ctx, cutoff)
	if err != nil {
		return false, err
	}

	best, err := h.matcher.Dispatch(cons, drivers, overrides, command.Now(), command.Staleness())
	if errors.Is(err, services.ErrDriverNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = uow.ConsignmentRepository().Update(ctx, cons); err != nil {
		return false, err
	}

	if err = uow.DriverRepository().Update(ctx, best); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publishAssigned(ctx, cons, command.Now())
	return true, nil
}

// roadDistances asks the provider for driver-to-pickup road distances. Any
// failure degrades this consignment to the straight-line metric for the
// current pass.
func (h DispatchConsignmentsCommandHandler) roadDistances(
	ctx context.Context,
	id kernel.UUID,
	cutoff time.Time,
) services.DistanceOverrides {
	if h.geo == nil {
		return nil
	}

	cons, drivers, err := h.readCandidates(ctx, id, cutoff)
	if err != nil || len(drivers) == 0 {
		return nil
	}

	origins := make([]kernel.GeoPoint, 0, len(drivers))
	located := make([]*driver.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.LastSample() == nil {
			continue
		}
		origins = append(origins, d.LastSample().Point())
		located = append(located, d)
	}
	if len(origins) == 0 {
		return nil
	}

	distances, err := h.geo.DistanceMatrix(ctx, origins, cons.PickupPoint())
	if err != nil || len(distances) != len(located) {
		if err != nil && h.logger != nil {
			h.logger.Warn("distance matrix unavailable, falling back to straight line",
				"consignmentId", id.String(), "error", err)
		}
		return nil
	}

	overrides := make(services.DistanceOverrides, len(located))
	for i, d := range located {
		overrides[d.ID().String()] = distances[i]
	}

	return overrides
}

func (h DispatchConsignmentsCommandHandler) readCandidates(
	ctx context.Context,
	id kernel.UUID,
	cutoff time.Time,
) (*consignment.Consignment, []*driver.Driver, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cons, err := uow.ConsignmentRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	drivers, err := uow.DriverRepository().GetAllFreeFresh(ctx, cutoff)
	if err != nil {
		return nil, nil, err
	}

	return cons, drivers, nil
}

func (h DispatchConsignmentsCommandHandler) publishAssigned(
	ctx context.Context,
	cons *consignment.Consignment,
	at time.Time,
) {
	if h.publisher == nil {
		return
	}

	err := h.publisher.PublishStatusChange(ctx, ports.StatusChangedEvent{
		ConsignmentID: cons.ID(),
		DriverID:      cons.Driver(),
		OldStatus:     consignment.Pending,
		NewStatus:     cons.Status(),
		OccurredAt:    at,
	})
	if err != nil && h.logger != nil {
		h.logger.Warn("status event not published",
			"consignmentId", cons.ID().String(), "error", err)
	}
}
