package commands

import (
	"context"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
)

// RegisterDriverCommandHandler persists a new driver. Drivers start
// available but are never matched until their first location report makes
// them fresh.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates the handler.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{uowFactory: uowFactory}
}

// Handle registers the driver and returns its identifier.
func (h RegisterDriverCommandHandler) Handle(
	ctx context.Context,
	command RegisterDriverCommand,
) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	drv, err := driver.NewDriver(kernel.NewUUID(), command.Name())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, drv); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return drv.ID(), nil
}
