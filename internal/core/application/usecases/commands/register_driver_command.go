package commands

import (
	"errors"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand onboards a new driver into the dispatch pool.
type RegisterDriverCommand struct {
	name string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates the command.
func NewRegisterDriverCommand(name string) (RegisterDriverCommand, error) {
	if name == "" {
		return RegisterDriverCommand{}, errs.NewValueIsRequiredError("name")
	}

	return RegisterDriverCommand{
		name: name,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}
