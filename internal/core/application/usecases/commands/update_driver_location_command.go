package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand records a driver's reported GPS position.
// Positions feed the proximity component of dispatch scoring.
type UpdateDriverLocationCommand struct {
	driverID kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a location update command.
func NewUpdateDriverLocationCommand(driverID kernel.UUID, location kernel.GeoPoint) (UpdateDriverLocationCommand, error) {
	if err := driverID.Validate(); err != nil {
		return UpdateDriverLocationCommand{}, err
	}
	if err := location.Validate(); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		driverID: driverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the reporting driver.
func (c *UpdateDriverLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the reported position.
func (c *UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// Validate ensures the command was created through the constructor.
func (c *UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}
