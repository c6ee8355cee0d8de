package commands

import (
	"context"
	"fmt"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
)

// AdvanceOrderCommandHandler applies actor-driven lifecycle transitions.
// It enforces the permission table, lets the aggregate enforce the state
// machine, and settles the side effects a transition has on the driver
// (load release on deliver/cancel) and on a relay slot (release when a
// deposited order is cancelled).
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	sink       ports.NotificationSink
}

// NewAdvanceOrderCommandHandler creates a handler for order transitions.
func NewAdvanceOrderCommandHandler(uowFactory UoWFactory, sink ports.NotificationSink) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle applies the requested transition inside one transaction. The
// actor check fails with ErrActorNotAllowed before any state is touched;
// an illegal transition fails with order.ErrInvalidTransition.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if !command.Action().allows(command.ActorRole()) {
		return fmt.Errorf("%w: %s may not %s", ErrActorNotAllowed,
			command.ActorRole(), command.Action())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if command.ActorRole() == ActorDriver {
		assigned := o.Driver()
		if assigned == nil || !assigned.IsEqual(command.ActorID()) {
			return fmt.Errorf("%w: order is not assigned to this driver", ErrActorNotAllowed)
		}
	}

	previous := o.Status()
	if err := h.applyAction(o, command.Action()); err != nil {
		return err
	}

	if err := h.settleDriverLoad(ctx, uow, o, command.Action(), previous); err != nil {
		return err
	}
	if err := h.settleRelaySlot(ctx, uow, o, command.Action(), previous); err != nil {
		return err
	}

	uow.TrackAggregate(o)
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}

func (h AdvanceOrderCommandHandler) applyAction(o *order.Order, action OrderAction) error {
	switch action {
	case OrderActionConfirm:
		return o.Confirm()
	case OrderActionStartPreparing:
		return o.StartPreparing()
	case OrderActionPickUp:
		return o.PickUp()
	case OrderActionStartTransit:
		return o.StartTransit()
	case OrderActionDeliver:
		return o.Deliver()
	case OrderActionCancel:
		return o.Cancel()
	default:
		return fmt.Errorf("%w: %s", order.ErrInvalidTransition, action)
	}
}

// settleDriverLoad frees the carrying driver's slot when the order leaves
// their hands: delivered by the driver, or cancelled mid-transport.
func (h AdvanceOrderCommandHandler) settleDriverLoad(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	action OrderAction,
	previous order.Status,
) error {
	if action != OrderActionDeliver && action != OrderActionCancel {
		return nil
	}
	if o.Driver() == nil || !statusHoldsDriverSlot(previous) {
		return nil
	}

	d, err := uow.DriverRepository().Get(ctx, *o.Driver())
	if err != nil {
		return err
	}
	if err := d.CompleteOrder(); err != nil {
		return err
	}
	return uow.DriverRepository().Update(ctx, d)
}

// settleRelaySlot releases the reserved relay slot when a deposited order
// is cancelled instead of collected.
func (h AdvanceOrderCommandHandler) settleRelaySlot(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	action OrderAction,
	previous order.Status,
) error {
	if action != OrderActionCancel || previous != order.StatusAtRelay || o.Relay() == nil {
		return nil
	}

	rp, err := uow.RelayPointRepository().Get(ctx, *o.Relay())
	if err != nil {
		return err
	}
	if err := rp.Release(requiredStorageType(o)); err != nil {
		return err
	}
	return uow.RelayPointRepository().Update(ctx, rp)
}

// statusHoldsDriverSlot reports whether an order in this status occupies
// one of its driver's active-order slots.
func statusHoldsDriverSlot(s order.Status) bool {
	switch s {
	case order.StatusAssigned, order.StatusPickedUp, order.StatusInTransit:
		return true
	default:
		return false
	}
}
