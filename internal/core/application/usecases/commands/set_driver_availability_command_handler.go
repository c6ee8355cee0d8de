package commands

import (
	"context"
)

// SetDriverAvailabilityCommandHandler stores driver shift changes.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewSetDriverAvailabilityCommandHandler creates a handler for shift
// changes.
func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle updates the driver's on-shift flag.
func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, command SetDriverAvailabilityCommand) error {
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
	if err := d.SetAvailable(command.Available()); err != nil {
		return err
	}

	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
