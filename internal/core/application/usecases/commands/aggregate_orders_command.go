package commands

import (
	"errors"
	"time"

	"consignment/internal/pkg/guard"
)

var ErrAggregateOrdersCommandIsNotConstructed = errors.New(
	"AggregateOrdersCommand must be created via NewAggregateOrdersCommand constructor",
)

// AggregateOrdersCommand triggers one aggregation pass: pull eligible
// orders from the feed, group them into pending consignments and persist
// the result.
type AggregateOrdersCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewAggregateOrdersCommand creates a command anchored at the given
// instant. The instant stamps the created consignments.
func NewAggregateOrdersCommand(now time.Time) AggregateOrdersCommand {
	return AggregateOrdersCommand{
		now: now,

		guard: guard.NewConstructorGuard(),
	}
}

// Now returns the pass instant.
func (c AggregateOrdersCommand) Now() time.Time {
	return c.now
}

// Validate ensures the command was created through the constructor.
func (c AggregateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAggregateOrdersCommandIsNotConstructed)
}
