package consignment

import (
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

// ErrConsignmentIsNotConstructed is returned when a Consignment instance was
// not created through NewConsignment or RestoreConsignment.
var ErrConsignmentIsNotConstructed = errors.New("Consignment must be created via NewConsignment constructor")

// Consignment is the aggregate root of the dispatch engine: the unit of
// delivery work grouping one or more orders collected from a single pickup
// location and dropped off across one or more stops.
//
// Consignment enforces these invariants:
//   - Exactly one pickup location and at least one delivery stop
//   - Constituent order references are fixed at creation
//   - Status transitions follow the lifecycle table in Status
//   - Pickup, delivery and failure events must originate from the bound driver
//   - Duplicate event delivery is a no-op, never an error
//   - COD consignments cannot be delivered without a collection confirmation
//
// The aggregate is created only by order aggregation, mutated only through
// validated lifecycle methods, and becomes immutable once it reaches a
// terminal status.
type Consignment struct {
	// id is the unique identifier for the consignment
	id kernel.UUID

	// pickupAddress and pickupPoint locate the single pickup
	pickupAddress string
	pickupPoint   kernel.GeoPoint

	// stops are the ordered delivery destinations, one per constituent order
	stops []*DeliveryStop

	// status is the current state in the delivery lifecycle
	status Status

	// driverID is the bound driver (nil while unassigned)
	driverID *kernel.UUID

	// codAmount is the cash-on-delivery total due in minor currency units
	codAmount int64

	// codCollected records whether the driver confirmed COD collection
	codCollected bool

	// proofRef references the proof-of-delivery artifact (nil until delivered)
	proofRef *string

	// failureReason holds the driver-reported failure or operator cancel reason
	failureReason *string

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	// isConstructed ensures the aggregate was created via a constructor
	isConstructed bool
}

// NewConsignment creates a Consignment in Pending status. The constituent
// orders are implied by the stops: one stop delivers exactly one order, and
// the set is immutable after creation.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - pickupAddress / pickupPoint: the single pickup location
//   - stops: one or more delivery stops in drop-off order
//   - codAmount: total cash-on-delivery due in minor units (zero for prepaid)
//   - createdAt: creation time used for oldest-first matching
func NewConsignment(
	id kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	stops []*DeliveryStop,
	codAmount int64,
	createdAt time.Time,
) (*Consignment, error) {
	c := &Consignment{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setPickup(pickupAddress, pickupPoint),
		c.setStops(stops),
		c.setCODAmount(codAmount),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreConsignment reconstructs a Consignment from persistence with its
// full lifecycle state. Used exclusively by repositories.
func RestoreConsignment(
	id kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	stops []*DeliveryStop,
	codAmount int64,
	status Status,
	driverID *kernel.UUID,
	codCollected bool,
	proofRef *string,
	failureReason *string,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
) (*Consignment, error) {
	c, err := NewConsignment(id, pickupAddress, pickupPoint, stops, codAmount, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	c.status = status
	c.driverID = driverID
	c.codCollected = codCollected
	c.proofRef = proofRef
	c.failureReason = failureReason
	c.assignedAt = assignedAt
	c.pickedUpAt = pickedUpAt
	c.deliveredAt = deliveredAt
	return c, nil
}

// Validate ensures the Consignment was created through a constructor.
// Repositories call this when reconstructing aggregates from storage.
func (c *Consignment) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsignmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two consignments by identifier.
func (c *Consignment) IsEqual(other *Consignment) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the consignment's unique identifier.
func (c *Consignment) ID() kernel.UUID {
	return c.id
}

// Status returns the current lifecycle status.
func (c *Consignment) Status() Status {
	return c.status
}

// PickupAddress returns the human-readable pickup address.
func (c *Consignment) PickupAddress() string {
	return c.pickupAddress
}

// PickupPoint returns the pickup coordinates.
func (c *Consignment) PickupPoint() kernel.GeoPoint {
	return c.pickupPoint
}

// Stops returns the ordered delivery stops.
func (c *Consignment) Stops() []*DeliveryStop {
	return c.stops
}

// OrderIDs returns the identifiers of the constituent orders in stop order.
func (c *Consignment) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.stops))
	for _, stop := range c.stops {
		ids = append(ids, stop.OrderID())
	}
	return ids
}

// Driver returns the bound driver's identifier, or nil while unassigned.
func (c *Consignment) Driver() *kernel.UUID {
	return c.driverID
}

// CODAmount returns the cash-on-delivery total due in minor units.
func (c *Consignment) CODAmount() int64 {
	return c.codAmount
}

// CODCollected reports whether COD collection was confirmed.
func (c *Consignment) CODCollected() bool {
	return c.codCollected
}

// ProofRef returns the proof-of-delivery reference, or nil.
func (c *Consignment) ProofRef() *string {
	return c.proofRef
}

// FailureReason returns the failure or cancellation reason, or nil.
func (c *Consignment) FailureReason() *string {
	return c.failureReason
}

// CreatedAt returns the creation time.
func (c *Consignment) CreatedAt() time.Time {
	return c.createdAt
}

// AssignedAt returns the assignment time, or nil.
func (c *Consignment) AssignedAt() *time.Time {
	return c.assignedAt
}

// PickedUpAt returns the pickup confirmation time, or nil.
func (c *Consignment) PickedUpAt() *time.Time {
	return c.pickedUpAt
}

// DeliveredAt returns the delivery completion time, or nil.
func (c *Consignment) DeliveredAt() *time.Time {
	return c.deliveredAt
}

// Assign binds a driver and transitions Pending -> Assigned.
//
// Re-assigning the same driver is a no-op so a retried matching pass stays
// harmless; assigning a different driver while Assigned is a conflict,
// because a losing concurrent pass must skip, not overwrite. The caller is
// responsible for updating the driver's active-consignment binding within
// the same transaction.
func (c *Consignment) Assign(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, duplicate, err := c.status.Assign()
	if err != nil {
		return err
	}

	if duplicate {
		if c.driverID != nil && c.driverID.IsEqual(driverID) {
			return nil
		}
		return errs.NewConflictError(fmt.Sprintf(
			"consignment %s is already assigned to another driver", c.id))
	}

	c.status = newStatus
	c.driverID = &driverID
	c.assignedAt = &at
	return nil
}

// Unassign unbinds the driver and returns the consignment to Pending for
// re-matching. Used when the driver is unreachable past the timeout.
func (c *Consignment) Unassign() error {
	newStatus, duplicate, err := c.status.Revert()
	if err != nil {
		return err
	}

	if duplicate {
		return nil
	}

	c.status = newStatus
	c.driverID = nil
	c.assignedAt = nil
	return nil
}

// ConfirmPickup transitions Assigned -> PickedUp. The confirmation must
// originate from the bound driver; a duplicate confirmation is a no-op.
func (c *Consignment) ConfirmPickup(by kernel.UUID, at time.Time) error {
	if err := c.guardBoundDriver(by, "confirm pickup"); err != nil {
		return err
	}

	newStatus, duplicate, err := c.status.ConfirmPickup()
	if err != nil {
		return err
	}

	if duplicate {
		return nil
	}

	c.status = newStatus
	c.pickedUpAt = &at
	return nil
}

// MarkInTransit transitions PickedUp -> InTransit on the first accepted
// location report after pickup. Automatic, never operator-driven.
func (c *Consignment) MarkInTransit() error {
	newStatus, duplicate, err := c.status.MarkInTransit()
	if err != nil {
		return err
	}

	if duplicate {
		return nil
	}

	c.status = newStatus
	return nil
}

// ConfirmStopDelivery records the drop-off of a single stop by the bound
// driver. Completing the final stop transitions InTransit -> Delivered and
// records the COD collection flag and proof-of-delivery reference.
//
// Business rules:
//   - Only the bound driver may confirm a delivery
//   - A consignment with COD due cannot reach Delivered unless the driver
//     confirms collection (codCollected = true)
//   - Confirming a stop on an already Delivered consignment is a no-op
func (c *Consignment) ConfirmStopDelivery(
	by kernel.UUID,
	stopID kernel.UUID,
	codCollected bool,
	proofRef *string,
	at time.Time,
) error {
	if err := c.guardBoundDriver(by, "confirm delivery"); err != nil {
		return err
	}

	if c.status == Delivered {
		return nil
	}

	if c.status != InTransit {
		return illegalTransition(c.status, "confirm delivery")
	}

	stop := c.findStop(stopID)
	if stop == nil {
		return errs.NewObjectNotFoundError("stopId", stopID.String())
	}

	if c.isFinalIncompleteStop(stop) {
		if c.codAmount > 0 && !codCollected {
			return errs.NewValueIsRequiredErrorWithCause("codCollected",
				fmt.Errorf("consignment %s has %d due on delivery", c.id, c.codAmount))
		}

		stop.Complete(at)

		newStatus, _, err := c.status.Deliver()
		if err != nil {
			return err
		}

		c.status = newStatus
		c.codCollected = codCollected
		c.proofRef = proofRef
		c.deliveredAt = &at
		return nil
	}

	stop.Complete(at)
	return nil
}

// Fail transitions InTransit -> Failed with a mandatory driver-reported
// reason (refused, unreachable address). Duplicate reports keep the
// original reason.
func (c *Consignment) Fail(by kernel.UUID, reason string) error {
	if err := c.guardBoundDriver(by, "report failure"); err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}

	newStatus, duplicate, err := c.status.Fail()
	if err != nil {
		return err
	}

	if duplicate {
		return nil
	}

	c.status = newStatus
	c.failureReason = &reason
	return nil
}

// Cancel applies the operator override, legal from any non-terminal status.
// A second cancel is a no-op keeping the original reason; cancelling a
// Delivered or Failed consignment is a conflict.
func (c *Consignment) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	newStatus, duplicate, err := c.status.Cancel()
	if err != nil {
		return err
	}

	if duplicate {
		return nil
	}

	c.status = newStatus
	c.failureReason = &reason
	return nil
}

// guardBoundDriver rejects lifecycle events that do not originate from the
// driver currently bound to the consignment.
func (c *Consignment) guardBoundDriver(by kernel.UUID, action string) error {
	if err := by.Validate(); err != nil {
		return err
	}

	if c.driverID == nil {
		return errs.NewConflictError(fmt.Sprintf(
			"consignment %s has no bound driver to %s", c.id, action))
	}

	if !c.driverID.IsEqual(by) {
		return errs.NewConflictError(fmt.Sprintf(
			"driver %s is not bound to consignment %s and may not %s", by, c.id, action))
	}

	return nil
}

func (c *Consignment) findStop(stopID kernel.UUID) *DeliveryStop {
	for _, stop := range c.stops {
		if stop.ID().IsEqual(stopID) {
			return stop
		}
	}
	return nil
}

// isFinalIncompleteStop reports whether completing the given stop completes
// the whole consignment.
func (c *Consignment) isFinalIncompleteStop(candidate *DeliveryStop) bool {
	for _, stop := range c.stops {
		if stop.Completed() || stop.ID().IsEqual(candidate.ID()) {
			continue
		}
		return false
	}
	return true
}

func (c *Consignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consignment) setPickup(address string, point kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if err := point.Validate(); err != nil {
		return err
	}

	c.pickupAddress = address
	c.pickupPoint = point
	return nil
}

func (c *Consignment) setStops(stops []*DeliveryStop) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}

	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}
	}

	c.stops = stops
	return nil
}

func (c *Consignment) setCODAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("codAmount",
			fmt.Errorf("%d is negative", amount))
	}
	c.codAmount = amount
	return nil
}
