package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand records that the bound driver collected the
// consignment at the pickup location.
type ConfirmPickupCommand struct {
	consignmentID kernel.UUID
	driverID      kernel.UUID
	at            time.Time

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates the command.
func NewConfirmPickupCommand(
	consignmentID kernel.UUID,
	driverID kernel.UUID,
	at time.Time,
) (ConfirmPickupCommand, error) {
	if err := errors.Join(consignmentID.Validate(), driverID.Validate()); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return ConfirmPickupCommand{
		consignmentID: consignmentID,
		driverID:      driverID,
		at:            at,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ConsignmentID returns the consignment being picked up.
func (c ConfirmPickupCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// DriverID returns the driver confirming the pickup.
func (c ConfirmPickupCommand) DriverID() kernel.UUID {
	return c.driverID
}

// At returns when the pickup happened.
func (c ConfirmPickupCommand) At() time.Time {
	return c.at
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}
