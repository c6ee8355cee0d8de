package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrConfirmRelayPickupCommandIsNotConstructed = errors.New(
	"ConfirmRelayPickupCommand must be created via NewConfirmRelayPickupCommand constructor",
)

// ConfirmRelayPickupCommand records the customer collecting a deposited
// order at its relay point. The slot release and the delivered transition
// commit together.
type ConfirmRelayPickupCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmRelayPickupCommand creates a relay collection command.
func NewConfirmRelayPickupCommand(orderID kernel.UUID) (ConfirmRelayPickupCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmRelayPickupCommand{}, err
	}

	return ConfirmRelayPickupCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being collected.
func (c *ConfirmRelayPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Validate ensures the command was created through the constructor.
func (c *ConfirmRelayPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRelayPickupCommandIsNotConstructed)
}
