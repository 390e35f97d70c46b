package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrCancelConsignmentCommandIsNotConstructed = errors.New(
	"CancelConsignmentCommand must be created via NewCancelConsignmentCommand constructor",
)

// CancelConsignmentCommand is the operator override that stops a
// consignment from any non-terminal status.
type CancelConsignmentCommand struct {
	consignmentID kernel.UUID
	reason        string
	at            time.Time

	guard guard.ConstructorGuard
}

// NewCancelConsignmentCommand creates the command. The reason is mandatory.
func NewCancelConsignmentCommand(
	consignmentID kernel.UUID,
	reason string,
	at time.Time,
) (CancelConsignmentCommand, error) {
	if err := consignmentID.Validate(); err != nil {
		return CancelConsignmentCommand{}, err
	}

	if reason == "" {
		return CancelConsignmentCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return CancelConsignmentCommand{
		consignmentID: consignmentID,
		reason:        reason,
		at:            at,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ConsignmentID returns the consignment being cancelled.
func (c CancelConsignmentCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// Reason returns the operator's reason.
func (c CancelConsignmentCommand) Reason() string {
	return c.reason
}

// At returns when the cancellation was requested.
func (c CancelConsignmentCommand) At() time.Time {
	return c.at
}

// Validate ensures the command was created through the constructor.
func (c CancelConsignmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelConsignmentCommandIsNotConstructed)
}
