package commands

import (
	"context"

	"lastmile/internal/core/domain/model/driver"
)

// CreateDriverCommandHandler persists new drivers.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewCreateDriverCommandHandler creates a handler for driver registration.
func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the driver aggregate and stores it.
func (h CreateDriverCommandHandler) Handle(ctx context.Context, command CreateDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := driver.NewDriver(
		command.DriverID(),
		command.Name(),
		command.VehicleType(),
		command.HasColdBox(),
		command.Location(),
		command.MaxActiveOrders(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
