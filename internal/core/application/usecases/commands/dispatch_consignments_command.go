package commands

import (
	"errors"
	"time"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrDispatchConsignmentsCommandIsNotConstructed = errors.New(
	"DispatchConsignmentsCommand must be created via NewDispatchConsignmentsCommand constructor",
)

// DispatchConsignmentsCommand triggers one matcher pass over the pending
// consignments.
type DispatchConsignmentsCommand struct {
	now       time.Time
	staleness time.Duration

	guard guard.ConstructorGuard
}

// NewDispatchConsignmentsCommand creates a command for a pass at the given
// instant with the given staleness threshold.
func NewDispatchConsignmentsCommand(now time.Time, staleness time.Duration) (DispatchConsignmentsCommand, error) {
	if staleness <= 0 {
		return DispatchConsignmentsCommand{}, errs.NewValueIsInvalidError("staleness")
	}

	return DispatchConsignmentsCommand{
		now:       now,
		staleness: staleness,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Now returns the pass instant.
func (c DispatchConsignmentsCommand) Now() time.Time {
	return c.now
}

// Staleness returns the maximum acceptable age of a driver's last sample.
func (c DispatchConsignmentsCommand) Staleness() time.Duration {
	return c.staleness
}

// Validate ensures the command was created through the constructor.
func (c DispatchConsignmentsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchConsignmentsCommandIsNotConstructed)
}
