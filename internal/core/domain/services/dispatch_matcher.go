package services

import (
	"errors"
	"math"
	"time"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/driver"
)

// ErrDriverNotFound is returned when no suitable driver is available for a
// pending consignment: the pool is empty, every driver is bound or off
// shift, or every last-known location is older than the staleness
// threshold. This is a normal, recoverable condition; the consignment
// stays Pending and is retried on the next pass.
var ErrDriverNotFound = errors.New("driver not found")

// DistanceOverrides maps a driver identifier (string form) to a
// provider-returned distance in meters. Drivers without an entry fall back
// to the straight-line metric; a failed provider call therefore degrades
// matching quality, never correctness.
type DistanceOverrides map[string]float64

// DispatchMatcher is a domain service that assigns the best driver to a
// pending consignment.
//
// Selection rules:
//   - Only available drivers with no active consignment are considered
//   - A driver whose last location sample is older than the staleness
//     threshold is excluded, no matter how close it claims to be
//   - The minimum distance from the driver's last-known location to the
//     consignment's pickup point wins
//   - Ties are broken by the most recently confirmed position
//
// A successful match mutates both aggregates: the consignment transitions
// Pending -> Assigned and the driver's active-consignment field is bound.
// The caller must persist both inside one transaction; a consignment must
// never be observably Assigned while its driver shows no binding.
type DispatchMatcher struct{}

// NewDispatchMatcher creates a DispatchMatcher.
func NewDispatchMatcher() DispatchMatcher {
	return DispatchMatcher{}
}

// Dispatch finds the best driver for the consignment and executes the
// assignment handshake on both aggregates.
//
// Parameters:
//   - cons: the pending consignment to dispatch
//   - drivers: the candidate pool; drivers bound within the same pass must
//     be removed by the caller before the next Dispatch call
//   - overrides: optional provider-returned distances (nil is fine)
//   - now: the instant used for staleness checks and the assignment stamp
//   - staleness: maximum acceptable age of a driver's last location sample
//
// Returns ErrDriverNotFound when no candidate qualifies, or the bound
// driver on success.
func (m DispatchMatcher) Dispatch(
	cons *consignment.Consignment,
	drivers []*driver.Driver,
	overrides DistanceOverrides,
	now time.Time,
	staleness time.Duration,
) (*driver.Driver, error) {
	if err := cons.Validate(); err != nil {
		return nil, err
	}

	best, err := m.findNearestDriver(cons, drivers, overrides, now, staleness)
	if err != nil {
		return nil, err
	}

	if err = best.BindConsignment(cons.ID()); err != nil {
		return nil, err
	}

	if err = cons.Assign(best.ID(), now); err != nil {
		return nil, err
	}

	return best, nil
}

// findNearestDriver scans the pool for the closest fresh, free driver.
func (m DispatchMatcher) findNearestDriver(
	cons *consignment.Consignment,
	drivers []*driver.Driver,
	overrides DistanceOverrides,
	now time.Time,
	staleness time.Duration,
) (*driver.Driver, error) {
	var (
		best         *driver.Driver
		bestDistance = math.MaxFloat64
	)

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		if !d.Available() || d.HasActiveConsignment() || !d.IsFreshAt(now, staleness) {
			continue
		}

		distance, err := m.distanceToPickup(cons, d, overrides)
		if err != nil {
			return nil, err
		}

		switch {
		case distance < bestDistance:
			best = d
			bestDistance = distance
		case distance == bestDistance && best != nil &&
			d.LastSample().ReportedAt().After(best.LastSample().ReportedAt()):
			// Equal distance: prefer the most recently confirmed position.
			best = d
		}
	}

	if best == nil {
		return nil, ErrDriverNotFound
	}

	return best, nil
}

func (m DispatchMatcher) distanceToPickup(
	cons *consignment.Consignment,
	d *driver.Driver,
	overrides DistanceOverrides,
) (float64, error) {
	if overrides != nil {
		if meters, ok := overrides[d.ID().String()]; ok {
			return meters, nil
		}
	}

	return d.LastSample().Point().DistanceTo(cons.PickupPoint())
}
