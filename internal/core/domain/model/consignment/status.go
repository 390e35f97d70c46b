package consignment

import (
	"fmt"

	"consignment/internal/pkg/errs"
)

// Status represents the lifecycle state of a consignment.
// It implements a state machine with defined transitions so that delivery
// units always follow the legal workflow, no matter which of the three
// actors (operations staff, driver client, scheduled pass) produced a
// given event.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──┬──> Delivered
//	   ▲            │                                 └──> Failed
//	   └────────────┘ (driver unreachable)
//
//	any non-terminal ──> Cancelled (operator override)
//
// Transition functions are pure: they take the current status and return
// the next one or a ConflictError, keeping guard logic testable in
// isolation from persistence. Re-applying an event the status already
// reflects is reported via the noop return value, never as an error,
// because driver clients retry network calls.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the consignment exists and awaits a
	// driver assignment from the dispatch pass.
	Pending

	// Assigned indicates a driver is bound and is expected to confirm pickup.
	Assigned

	// PickedUp indicates the bound driver confirmed collecting the goods.
	PickedUp

	// InTransit indicates the driver reported movement after pickup.
	InTransit

	// Delivered is a terminal status: every stop is complete and any COD
	// due has been confirmed collected.
	Delivered

	// Failed is a terminal status: the driver reported a delivery failure
	// with a reason.
	Failed

	// Cancelled is a terminal status reached by operator cancellation.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Assigned:  "Assigned",
		PickedUp:  "PickedUp",
		InTransit: "InTransit",
		Delivered: "Delivered",
		Failed:    "Failed",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the Status value is one of the defined lifecycle
// states. Unknown (0) and out-of-range values are invalid. Used when
// reconstructing consignments from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveDriver validates consistency between status and driver
// binding when restoring from persistence.
//
// Business rules:
//   - Pending consignments must not reference a driver
//   - Assigned, PickedUp and InTransit consignments must reference one
//   - Terminal consignments may keep the reference for audit
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}

	if !driver && (s == Assigned || s == PickedUp || s == InTransit) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}

	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// RecordsProgress reports whether location samples received in this status
// belong to the consignment's recorded path. Path recording starts at
// PickedUp and stops at a terminal status.
func (s Status) RecordsProgress() bool {
	return s == PickedUp || s == InTransit
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned (matcher binds a driver)
//   - Assigned -> Assigned (reported as noop; same-driver checks live on the aggregate)
//
// Returns the new status, whether the event was a duplicate, and a
// ConflictError when the transition is illegal.
func (s Status) Assign() (Status, bool, error) {
	switch s {
	case Pending:
		return Assigned, false, nil
	case Assigned:
		return Assigned, true, nil
	default:
		return 0, false, illegalTransition(s, "assign a driver")
	}
}

// Revert transitions the status back to Pending when the bound driver is
// unreachable; the consignment re-enters the matching queue.
func (s Status) Revert() (Status, bool, error) {
	switch s {
	case Assigned:
		return Pending, false, nil
	case Pending:
		return Pending, true, nil
	default:
		return 0, false, illegalTransition(s, "revert to pending")
	}
}

// ConfirmPickup transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp
//   - PickedUp -> PickedUp (duplicate delivery of the same confirmation)
func (s Status) ConfirmPickup() (Status, bool, error) {
	switch s {
	case Assigned:
		return PickedUp, false, nil
	case PickedUp:
		return PickedUp, true, nil
	default:
		return 0, false, illegalTransition(s, "confirm pickup")
	}
}

// MarkInTransit transitions the status to InTransit on the first location
// update after pickup. This transition is automatic, never operator-driven.
func (s Status) MarkInTransit() (Status, bool, error) {
	switch s {
	case PickedUp:
		return InTransit, false, nil
	case InTransit:
		return InTransit, true, nil
	default:
		return 0, false, illegalTransition(s, "mark in transit")
	}
}

// Deliver transitions the status to Delivered once every stop is complete.
func (s Status) Deliver() (Status, bool, error) {
	switch s {
	case InTransit:
		return Delivered, false, nil
	case Delivered:
		return Delivered, true, nil
	default:
		return 0, false, illegalTransition(s, "confirm delivery")
	}
}

// Fail transitions the status to Failed on a driver-reported failure.
func (s Status) Fail() (Status, bool, error) {
	switch s {
	case InTransit:
		return Failed, false, nil
	case Failed:
		return Failed, true, nil
	default:
		return 0, false, illegalTransition(s, "report failure")
	}
}

// Cancel transitions the status to Cancelled. The operator override is
// legal from any non-terminal status; cancelling an already cancelled
// consignment is a duplicate, while cancelling a Delivered or Failed one
// is a conflict.
func (s Status) Cancel() (Status, bool, error) {
	switch s {
	case Pending, Assigned, PickedUp, InTransit:
		return Cancelled, false, nil
	case Cancelled:
		return Cancelled, true, nil
	default:
		return 0, false, illegalTransition(s, "cancel")
	}
}

func illegalTransition(from Status, action string) error {
	return errs.NewConflictError(fmt.Sprintf("%s is not a valid status to %s", from, action))
}
