package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand registers a new driver in the fleet. The driver
// starts available with no active orders.
type CreateDriverCommand struct {
	driverID        kernel.UUID
	name            string
	vehicleType     driver.VehicleType
	hasColdBox      bool
	location        kernel.GeoPoint
	maxActiveOrders int

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a new driver.
func NewCreateDriverCommand(
	driverID kernel.UUID,
	name string,
	vehicleType driver.VehicleType,
	hasColdBox bool,
	location kernel.GeoPoint,
	maxActiveOrders int,
) (CreateDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}
	if name == "" {
		return CreateDriverCommand{}, errs.NewValueIsRequiredError("name")
	}
	if err := vehicleType.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}
	if err := location.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		driverID:        driverID,
		name:            name,
		vehicleType:     vehicleType,
		hasColdBox:      hasColdBox,
		location:        location,
		maxActiveOrders: maxActiveOrders,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the identifier the new driver will carry.
func (c *CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c *CreateDriverCommand) Name() string {
	return c.name
}

// VehicleType returns the driver's vehicle kind.
func (c *CreateDriverCommand) VehicleType() driver.VehicleType {
	return c.vehicleType
}

// HasColdBox reports whether the vehicle carries cold-chain equipment.
func (c *CreateDriverCommand) HasColdBox() bool {
	return c.hasColdBox
}

// Location returns the driver's starting position.
func (c *CreateDriverCommand) Location() kernel.GeoPoint {
	return c.location
}

// MaxActiveOrders returns the driver's concurrent order cap.
func (c *CreateDriverCommand) MaxActiveOrders() int {
	return c.maxActiveOrders
}

// Validate ensures the command was created through the constructor.
func (c *CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}
