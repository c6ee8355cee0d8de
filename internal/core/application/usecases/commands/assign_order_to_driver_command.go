package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignOrderToDriverCommandIsNotConstructed = errors.New(
	"AssignOrderToDriverCommand must be created via NewAssignOrderToDriverCommand constructor",
)

// AssignOrderToDriverCommand is the manual dispatch override: an operator
// pins a specific ready order to a specific driver, bypassing scoring but
// not the domain rules. Capacity, availability and the state machine
// still apply.
type AssignOrderToDriverCommand struct {
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderToDriverCommand creates a manual assignment command.
func NewAssignOrderToDriverCommand(orderID, driverID kernel.UUID) (AssignOrderToDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderToDriverCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return AssignOrderToDriverCommand{}, err
	}

	return AssignOrderToDriverCommand{
		orderID:  orderID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to assign.
func (c *AssignOrderToDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the driver to assign it to.
func (c *AssignOrderToDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c *AssignOrderToDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderToDriverCommandIsNotConstructed)
}
