package commands

import (
	"errors"
	"time"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrReclaimUnreachableCommandIsNotConstructed = errors.New(
	"ReclaimUnreachableCommand must be created via NewReclaimUnreachableCommand constructor",
)

// ReclaimUnreachableCommand triggers one reclaim pass: assigned
// consignments whose driver stopped reporting go back to the pending pool.
type ReclaimUnreachableCommand struct {
	now     time.Time
	timeout time.Duration

	guard guard.ConstructorGuard
}

// NewReclaimUnreachableCommand creates a command for a pass at the given
// instant. A driver silent for longer than the timeout counts as
// unreachable.
func NewReclaimUnreachableCommand(now time.Time, timeout time.Duration) (ReclaimUnreachableCommand, error) {
	if timeout <= 0 {
		return ReclaimUnreachableCommand{}, errs.NewValueIsInvalidError("timeout")
	}

	return ReclaimUnreachableCommand{
		now:     now,
		timeout: timeout,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Now returns the pass instant.
func (c ReclaimUnreachableCommand) Now() time.Time {
	return c.now
}

// Timeout returns the unreachable threshold.
func (c ReclaimUnreachableCommand) Timeout() time.Duration {
	return c.timeout
}

// Validate ensures the command was created through the constructor.
func (c ReclaimUnreachableCommand) Validate() error {
	return c.guard.Validate(ErrReclaimUnreachableCommandIsNotConstructed)
}
