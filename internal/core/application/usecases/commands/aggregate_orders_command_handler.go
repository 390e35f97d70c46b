package commands

import (
	"context"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/orderref"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
)

// AggregateOrdersResult reports what an aggregation pass produced, so the
// calling job can log and count it.
type AggregateOrdersResult struct {
	// ConsignmentIDs identifies the pending consignments created this pass.
	ConsignmentIDs []kernel.UUID

	// Rejected lists orders excluded from aggregation with their reasons.
	Rejected []services.RejectedOrder
}

// AggregateOrdersCommandHandler runs one aggregation pass: feed, filter,
// group, persist.
type AggregateOrdersCommandHandler struct {
	uowFactory ConsignmentUoWFactory
	orderFeed  ports.OrderFeed
	aggregator services.OrderAggregator
}

// NewAggregateOrdersCommandHandler creates the handler.
func NewAggregateOrdersCommandHandler(
	uowFactory ConsignmentUoWFactory,
	orderFeed ports.OrderFeed,
	aggregator services.OrderAggregator,
) AggregateOrdersCommandHandler {
	return AggregateOrdersCommandHandler{
		uowFactory: uowFactory,
		orderFeed:  orderFeed,
		aggregator: aggregator,
	}
}

// Handle pulls eligible orders, drops those already owned by a live
// consignment, aggregates the rest and persists every candidate in one
// transaction. An order is never consumed twice: the referenced-order
// check runs inside the same transaction that writes the new consignments.
func (h AggregateOrdersCommandHandler) Handle(
	ctx context.Context,
	command AggregateOrdersCommand,
) (AggregateOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return AggregateOrdersResult{}, err
	}

	eligible, err := h.orderFeed.EligibleOrders(ctx)
	if err != nil {
		return AggregateOrdersResult{}, err
	}
	if len(eligible) == 0 {
		return AggregateOrdersResult{}, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return AggregateOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	consignmentRepo := uow.ConsignmentRepository()

	fresh, err := h.dropReferenced(ctx, consignmentRepo, eligible)
	if err != nil {
		return AggregateOrdersResult{}, err
	}

	candidates, rejected, err := h.aggregator.Aggregate(fresh, command.Now())
	if err != nil {
		return AggregateOrdersResult{}, err
	}

	result := AggregateOrdersResult{Rejected: rejected}
	for _, cand := range candidates {
		if err = consignmentRepo.Add(ctx, cand); err != nil {
			return AggregateOrdersResult{}, err
		}
		result.ConsignmentIDs = append(result.ConsignmentIDs, cand.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return AggregateOrdersResult{}, err
	}

	return result, nil
}

func (h AggregateOrdersCommandHandler) dropReferenced(
	ctx context.Context,
	repo ports.ConsignmentRepository,
	orders []orderref.OrderRef,
) ([]orderref.OrderRef, error) {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, ref := range orders {
		if ref.Validate() == nil {
			ids = append(ids, ref.OrderID())
		}
	}

	referenced, err := repo.GetReferencedOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	fresh := make([]orderref.OrderRef, 0, len(orders))
	for _, ref := range orders {
		if ref.Validate() == nil && referenced[ref.OrderID()] {
			continue
		}
		fresh = append(fresh, ref)
	}

	return fresh, nil
}
