package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new customer order in pending status.
// The order enters the lifecycle at the very beginning: the vendor still
// has to confirm it before preparation starts.
type CreateOrderCommand struct {
	orderID          kernel.UUID
	deliveryType     order.DeliveryType
	origin           kernel.GeoPoint
	destination      kernel.GeoPoint
	items            []order.Item
	totalAmountCents int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// All parts are validated here so the handler works with known-good input.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	deliveryType order.DeliveryType,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
	items []order.Item,
	totalAmountCents int64,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := deliveryType.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := origin.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := destination.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}

	return CreateOrderCommand{
		orderID:          orderID,
		deliveryType:     deliveryType,
		origin:           origin,
		destination:      destination,
		items:            items,
		totalAmountCents: totalAmountCents,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier the new order will carry.
func (c *CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryType returns the requested delivery type.
func (c *CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// Origin returns the vendor pickup position.
func (c *CreateOrderCommand) Origin() kernel.GeoPoint {
	return c.origin
}

// Destination returns the delivery position.
func (c *CreateOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// Items returns the ordered line items.
func (c *CreateOrderCommand) Items() []order.Item {
	return c.items
}

// TotalAmountCents returns the order total in cents.
func (c *CreateOrderCommand) TotalAmountCents() int64 {
	return c.totalAmountCents
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
