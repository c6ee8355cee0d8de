package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrDepositAtRelayCommandIsNotConstructed = errors.New(
	"DepositAtRelayCommand must be created via NewDepositAtRelayCommand constructor",
)

// DepositAtRelayCommand records the driver dropping a relay order off at
// its relay point. The slot reservation and the status change commit in
// the same transaction: both happen or neither does.
type DepositAtRelayCommand struct {
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDepositAtRelayCommand creates a deposit command for the carrying
// driver.
func NewDepositAtRelayCommand(orderID, driverID kernel.UUID) (DepositAtRelayCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DepositAtRelayCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return DepositAtRelayCommand{}, err
	}

	return DepositAtRelayCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being deposited.
func (c *DepositAtRelayCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the depositing driver.
func (c *DepositAtRelayCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c *DepositAtRelayCommand) Validate() error {
	return c.guard.Validate(ErrDepositAtRelayCommandIsNotConstructed)
}
