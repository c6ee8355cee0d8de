package commands

import (
	"context"
)

// UpdateDriverLocationCommandHandler stores driver position reports.
type UpdateDriverLocationCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewUpdateDriverLocationCommandHandler creates a handler for location
// updates.
func NewUpdateDriverLocationCommandHandler(uowFactory DriverUoWFactory) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle updates the driver's position.
func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, command UpdateDriverLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if err := d.SetLocation(command.Location()); err != nil {
		return err
	}

	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
