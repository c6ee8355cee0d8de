package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand toggles a driver's on-shift flag. Going
// off shift stops new assignments; orders already carried stay with the
// driver.
type SetDriverAvailabilityCommand struct {
	driverID  kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates an availability command.
func NewSetDriverAvailabilityCommand(driverID kernel.UUID, available bool) (SetDriverAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}

	return SetDriverAvailabilityCommand{
		driverID:  driverID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the driver to update.
func (c *SetDriverAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Available returns the requested on-shift flag.
func (c *SetDriverAvailabilityCommand) Available() bool {
	return c.available
}

// Validate ensures the command was created through the constructor.
func (c *SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}
