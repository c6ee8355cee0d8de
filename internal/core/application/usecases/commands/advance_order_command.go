package commands

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// ErrActorNotAllowed is returned when the requesting actor may not drive
// the requested transition, either because of its role or because a
// driver is acting on an order assigned to somebody else.
var ErrActorNotAllowed = errors.New("actor is not allowed to perform this transition")

// Actor is the role requesting an order transition.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorVendor is the restaurant or shop preparing the order.
	ActorVendor

	// ActorDriver is the courier carrying the order.
	ActorDriver

	// ActorCustomer is the ordering customer.
	ActorCustomer

	// ActorAdmin is an operations operator; admins may drive any
	// transition.
	ActorAdmin
)

// String returns the lowercase name of the actor role.
// Implements fmt.Stringer.
func (a Actor) String() string {
	switch a {
	case ActorVendor:
		return "vendor"
	case ActorDriver:
		return "driver"
	case ActorCustomer:
		return "customer"
	case ActorAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ActorFromString parses the lowercase actor role name.
func ActorFromString(s string) (Actor, error) {
	switch s {
	case "vendor":
		return ActorVendor, nil
	case "driver":
		return ActorDriver, nil
	case "customer":
		return ActorCustomer, nil
	case "admin":
		return ActorAdmin, nil
	default:
		return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%q is not a valid actor role", s))
	}
}

// OrderAction is a lifecycle transition requested through the advance
// command. Assignment and the relay leg have their own commands.
type OrderAction int

const (
	// OrderActionUnknown represents an invalid or undefined action.
	OrderActionUnknown OrderAction = iota

	// OrderActionConfirm moves pending to confirmed.
	OrderActionConfirm

	// OrderActionStartPreparing moves confirmed to preparing.
	OrderActionStartPreparing

	// OrderActionPickUp moves assigned to picked_up.
	OrderActionPickUp

	// OrderActionStartTransit moves picked_up to in_transit.
	OrderActionStartTransit

	// OrderActionDeliver moves the order to delivered.
	OrderActionDeliver

	// OrderActionCancel cancels the order from any non-terminal state.
	OrderActionCancel
)

// String returns the snake_case name of the action.
// Implements fmt.Stringer.
func (a OrderAction) String() string {
	switch a {
	case OrderActionConfirm:
		return "confirm"
	case OrderActionStartPreparing:
		return "start_preparing"
	case OrderActionPickUp:
		return "pick_up"
	case OrderActionStartTransit:
		return "start_transit"
	case OrderActionDeliver:
		return "deliver"
	case OrderActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// OrderActionFromString parses the snake_case action name.
func OrderActionFromString(s string) (OrderAction, error) {
	switch s {
	case "confirm":
		return OrderActionConfirm, nil
	case "start_preparing":
		return OrderActionStartPreparing, nil
	case "pick_up":
		return OrderActionPickUp, nil
	case "start_transit":
		return OrderActionStartTransit, nil
	case "deliver":
		return OrderActionDeliver, nil
	case "cancel":
		return OrderActionCancel, nil
	default:
		return OrderActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%q is not a valid order action", s))
	}
}

// allowedActors is the permission table per action. Drivers are further
// checked against the order's assigned driver; admins pass everywhere.
func (a OrderAction) allowedActors() []Actor {
	switch a {
	case OrderActionConfirm, OrderActionStartPreparing:
		return []Actor{ActorVendor, ActorAdmin}
	case OrderActionPickUp, OrderActionStartTransit:
		return []Actor{ActorDriver, ActorAdmin}
	case OrderActionDeliver:
		return []Actor{ActorDriver, ActorVendor, ActorAdmin}
	case OrderActionCancel:
		return []Actor{ActorVendor, ActorCustomer, ActorAdmin}
	default:
		return nil
	}
}

// allows reports whether the role may request this action.
func (a OrderAction) allows(role Actor) bool {
	for _, allowed := range a.allowedActors() {
		if allowed == role {
			return true
		}
	}
	return false
}

// AdvanceOrderCommand drives one lifecycle transition on behalf of an
// actor. The permission table lives here; the state machine itself stays
// actor-agnostic inside the order aggregate.
type AdvanceOrderCommand struct {
	orderID   kernel.UUID
	action    OrderAction
	actorRole Actor
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a transition command for the given
// actor. actorID identifies the requester; for drivers it must match the
// order's assigned driver at handling time.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	action OrderAction,
	actorRole Actor,
	actorID kernel.UUID,
) (AdvanceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}
	if action == OrderActionUnknown {
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid order action", action))
	}
	if actorRole == ActorUnknown {
		return AdvanceOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%d is not a valid actor role", actorRole))
	}
	if err := actorID.Validate(); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID:   orderID,
		action:    action,
		actorRole: actorRole,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to advance.
func (c *AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the requested transition.
func (c *AdvanceOrderCommand) Action() OrderAction {
	return c.action
}

// ActorRole returns the requesting role.
func (c *AdvanceOrderCommand) ActorRole() Actor {
	return c.actorRole
}

// ActorID returns the requester's identifier.
func (c *AdvanceOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}
