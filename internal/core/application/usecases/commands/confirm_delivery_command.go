package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records the completion of one delivery stop.
// Completing the final stop delivers the whole consignment.
type ConfirmDeliveryCommand struct {
	consignmentID kernel.UUID
	driverID      kernel.UUID
	stopID        kernel.UUID
	codCollected  bool
	proofRef      *string
	at            time.Time

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates the command.
func NewConfirmDeliveryCommand(
	consignmentID kernel.UUID,
	driverID kernel.UUID,
	stopID kernel.UUID,
	codCollected bool,
	proofRef *string,
	at time.Time,
) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(
		consignmentID.Validate(), driverID.Validate(), stopID.Validate()); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		consignmentID: consignmentID,
		driverID:      driverID,
		stopID:        stopID,
		codCollected:  codCollected,
		proofRef:      proofRef,
		at:            at,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ConsignmentID returns the consignment being delivered.
func (c ConfirmDeliveryCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// DriverID returns the driver confirming the stop.
func (c ConfirmDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// StopID returns the stop being completed.
func (c ConfirmDeliveryCommand) StopID() kernel.UUID {
	return c.stopID
}

// CODCollected reports whether the cash due was collected at this stop.
func (c ConfirmDeliveryCommand) CODCollected() bool {
	return c.codCollected
}

// ProofRef returns the delivery proof reference, if any.
func (c ConfirmDeliveryCommand) ProofRef() *string {
	return c.proofRef
}

// At returns when the stop was completed.
func (c ConfirmDeliveryCommand) At() time.Time {
	return c.at
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}
