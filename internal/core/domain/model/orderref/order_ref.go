// Package orderref provides the read-only reference to an order owned by
// the external Order/Payment subsystem. The engine never mutates orders; it
// only consumes the fields needed to group them into consignments.
package orderref

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

// ErrOrderRefIsNotConstructed is returned when using a zero-value OrderRef.
var ErrOrderRefIsNotConstructed = errs.NewValueIsRequiredError(
	"order reference must be created via NewOrderRef constructor")

// OrderRef is an immutable view of an order eligible for aggregation:
// payment confirmed and ready for pickup at a known location.
type OrderRef struct {
	orderID           kernel.UUID
	pickupLocationKey string
	pickupPoint       kernel.GeoPoint
	deliveryAddress   string
	deliveryPoint     kernel.GeoPoint
	codAmount         int64
	paymentConfirmed  bool
	readyAt           time.Time
	guard             guard.ConstructorGuard
}

// NewOrderRef creates a validated order reference. The pickup-location key
// identifies the warehouse or vendor orders are grouped by; an order
// without one cannot be aggregated and is rejected here rather than
// silently dropped downstream.
func NewOrderRef(
	orderID kernel.UUID,
	pickupLocationKey string,
	pickupPoint kernel.GeoPoint,
	deliveryAddress string,
	deliveryPoint kernel.GeoPoint,
	codAmount int64,
	paymentConfirmed bool,
	readyAt time.Time,
) (OrderRef, error) {
	if err := errors.Join(orderID.Validate(), pickupPoint.Validate(), deliveryPoint.Validate()); err != nil {
		return OrderRef{}, err
	}

	if pickupLocationKey == "" {
		return OrderRef{}, errs.NewValueIsRequiredError("pickupLocationKey")
	}

	if deliveryAddress == "" {
		return OrderRef{}, errs.NewValueIsRequiredError("deliveryAddress")
	}

	if codAmount < 0 {
		return OrderRef{}, errs.NewValueIsInvalidError("codAmount")
	}

	if readyAt.IsZero() {
		return OrderRef{}, errs.NewValueIsRequiredError("readyAt")
	}

	return OrderRef{
		orderID:           orderID,
		pickupLocationKey: pickupLocationKey,
		pickupPoint:       pickupPoint,
		deliveryAddress:   deliveryAddress,
		deliveryPoint:     deliveryPoint,
		codAmount:         codAmount,
		paymentConfirmed:  paymentConfirmed,
		readyAt:           readyAt,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the reference was created via NewOrderRef.
func (o OrderRef) Validate() error {
	return o.guard.Validate(ErrOrderRefIsNotConstructed)
}

// OrderID returns the external order identifier.
func (o OrderRef) OrderID() kernel.UUID {
	return o.orderID
}

// PickupLocationKey returns the warehouse/vendor grouping key.
func (o OrderRef) PickupLocationKey() string {
	return o.pickupLocationKey
}

// PickupPoint returns the pickup coordinates.
func (o OrderRef) PickupPoint() kernel.GeoPoint {
	return o.pickupPoint
}

// DeliveryAddress returns the human-readable destination.
func (o OrderRef) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryPoint returns the destination coordinates.
func (o OrderRef) DeliveryPoint() kernel.GeoPoint {
	return o.deliveryPoint
}

// CODAmount returns the cash due on delivery in minor units.
func (o OrderRef) CODAmount() int64 {
	return o.codAmount
}

// PaymentConfirmed reports whether the payment subsystem confirmed the order.
func (o OrderRef) PaymentConfirmed() bool {
	return o.paymentConfirmed
}

// ReadyAt returns when the order became ready for pickup.
func (o OrderRef) ReadyAt() time.Time {
	return o.readyAt
}
