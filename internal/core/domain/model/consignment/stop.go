package consignment

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

// ErrStopIsNotConstructed is returned when a DeliveryStop was not created
// through NewDeliveryStop or RestoreDeliveryStop.
var ErrStopIsNotConstructed = errors.New("DeliveryStop must be created via NewDeliveryStop constructor")

// DeliveryStop is an entity within the Consignment aggregate representing a
// single drop-off: the order it delivers, the destination address and
// coordinates, and whether the driver has completed it.
//
// Stops are created together with their consignment and only mutate in one
// direction: incomplete -> complete. Completing an already complete stop is
// a no-op so duplicate confirmations from retrying clients stay harmless.
type DeliveryStop struct {
	id          kernel.UUID
	orderID     kernel.UUID
	address     string
	point       kernel.GeoPoint
	completed   bool
	completedAt *time.Time

	isConstructed bool
}

// NewDeliveryStop creates a stop for the given order and destination.
func NewDeliveryStop(id, orderID kernel.UUID, address string, point kernel.GeoPoint) (*DeliveryStop, error) {
	stop := &DeliveryStop{
		isConstructed: true,
	}

	if err := errors.Join(
		stop.setID(id),
		stop.setOrderID(orderID),
		stop.setAddress(address),
		stop.setPoint(point),
	); err != nil {
		return nil, err
	}

	return stop, nil
}

// RestoreDeliveryStop reconstructs a stop from persistence, including its
// completion state.
func RestoreDeliveryStop(
	id, orderID kernel.UUID,
	address string,
	point kernel.GeoPoint,
	completed bool,
	completedAt *time.Time,
) (*DeliveryStop, error) {
	stop, err := NewDeliveryStop(id, orderID, address, point)
	if err != nil {
		return nil, err
	}

	stop.completed = completed
	stop.completedAt = completedAt
	return stop, nil
}

// Validate ensures the stop was created through a constructor.
func (s *DeliveryStop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// ID returns the stop's unique identifier.
func (s *DeliveryStop) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the order delivered at this stop.
func (s *DeliveryStop) OrderID() kernel.UUID {
	return s.orderID
}

// Address returns the human-readable destination address.
func (s *DeliveryStop) Address() string {
	return s.address
}

// Point returns the destination coordinates.
func (s *DeliveryStop) Point() kernel.GeoPoint {
	return s.point
}

// Completed reports whether the driver has confirmed this drop-off.
func (s *DeliveryStop) Completed() bool {
	return s.completed
}

// CompletedAt returns the completion time, or nil while incomplete.
func (s *DeliveryStop) CompletedAt() *time.Time {
	return s.completedAt
}

// Complete marks the stop as delivered at the given time.
// Completing an already complete stop keeps its original timestamp.
func (s *DeliveryStop) Complete(at time.Time) {
	if s.completed {
		return
	}

	s.completed = true
	s.completedAt = &at
}

func (s *DeliveryStop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *DeliveryStop) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	s.orderID = orderID
	return nil
}

func (s *DeliveryStop) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	s.address = address
	return nil
}

func (s *DeliveryStop) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	s.point = point
	return nil
}
