package services

import (
	"fmt"
	"sort"
	"time"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/orderref"
	"consignment/internal/pkg/errs"
)

// RejectedOrder reports an order excluded from aggregation together with
// the reason, so operations can intervene instead of the order silently
// disappearing from the pipeline.
type RejectedOrder struct {
	OrderID kernel.UUID
	Reason  string
}

// OrderAggregator is a domain service that turns eligible orders into
// consignment candidates.
//
// Policy: orders sharing a pickup-location key whose ready times fall
// within the aggregation window of the batch's oldest order are combined
// into one candidate, up to the stop cap. Orders exceeding the window or
// the cap spill into a new candidate. A candidate is produced even for a
// single order.
type OrderAggregator struct {
	window   time.Duration
	maxStops int
}

// NewOrderAggregator creates an aggregator with the given window and stop
// cap. Both must be positive.
func NewOrderAggregator(window time.Duration, maxStops int) (OrderAggregator, error) {
	if window <= 0 {
		return OrderAggregator{}, errs.NewValueIsInvalidErrorWithCause("window",
			fmt.Errorf("%s is not positive", window))
	}
	if maxStops < 1 {
		return OrderAggregator{}, errs.NewValueIsOutOfRangeError("maxStops", maxStops, 1, "unbounded")
	}

	return OrderAggregator{window: window, maxStops: maxStops}, nil
}

// Aggregate groups the given orders into Pending consignments created at
// the given instant. Orders that cannot be aggregated (unconstructed
// reference, missing pickup location, unconfirmed payment) are returned in
// the rejection list, never silently dropped.
func (a OrderAggregator) Aggregate(
	orders []orderref.OrderRef,
	now time.Time,
) ([]*consignment.Consignment, []RejectedOrder, error) {
	accepted, rejected := a.screen(orders)

	// Group per pickup-location key, each group in ready-time order so the
	// window anchors on the oldest order of a batch.
	groups := make(map[string][]orderref.OrderRef)
	keys := make([]string, 0)
	for _, ref := range accepted {
		if _, ok := groups[ref.PickupLocationKey()]; !ok {
			keys = append(keys, ref.PickupLocationKey())
		}
		groups[ref.PickupLocationKey()] = append(groups[ref.PickupLocationKey()], ref)
	}
	sort.Strings(keys)

	candidates := make([]*consignment.Consignment, 0)
	for _, key := range keys {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].ReadyAt().Before(group[j].ReadyAt())
		})

		for len(group) > 0 {
			batch := a.takeBatch(group)
			group = group[len(batch):]

			cand, err := a.buildCandidate(batch, now)
			if err != nil {
				return nil, nil, err
			}
			candidates = append(candidates, cand)
		}
	}

	return candidates, rejected, nil
}

// screen validates each reference, splitting the input into aggregatable
// orders and reported rejections.
func (a OrderAggregator) screen(orders []orderref.OrderRef) ([]orderref.OrderRef, []RejectedOrder) {
	accepted := make([]orderref.OrderRef, 0, len(orders))
	rejected := make([]RejectedOrder, 0)

	for _, ref := range orders {
		if err := ref.Validate(); err != nil {
			rejected = append(rejected, RejectedOrder{
				OrderID: ref.OrderID(),
				Reason:  err.Error(),
			})
			continue
		}

		if !ref.PaymentConfirmed() {
			rejected = append(rejected, RejectedOrder{
				OrderID: ref.OrderID(),
				Reason:  "payment is not confirmed",
			})
			continue
		}

		accepted = append(accepted, ref)
	}

	return accepted, rejected
}

// takeBatch slices the leading orders of a ready-time-sorted group that fit
// one consignment: within the window of the first order and under the stop
// cap.
func (a OrderAggregator) takeBatch(group []orderref.OrderRef) []orderref.OrderRef {
	anchor := group[0].ReadyAt()
	end := 1
	for end < len(group) && end < a.maxStops &&
		group[end].ReadyAt().Sub(anchor) <= a.window {
		end++
	}
	return group[:end]
}

func (a OrderAggregator) buildCandidate(
	batch []orderref.OrderRef,
	now time.Time,
) (*consignment.Consignment, error) {
	stops := make([]*consignment.DeliveryStop, 0, len(batch))
	var codTotal int64

	for _, ref := range batch {
		stop, err := consignment.NewDeliveryStop(
			kernel.NewUUID(), ref.OrderID(), ref.DeliveryAddress(), ref.DeliveryPoint())
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
		codTotal += ref.CODAmount()
	}

	return consignment.NewConsignment(
		kernel.NewUUID(),
		batch[0].PickupLocationKey(),
		batch[0].PickupPoint(),
		stops,
		codTotal,
		now,
	)
}
