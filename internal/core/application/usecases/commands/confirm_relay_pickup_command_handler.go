package commands

import (
	"context"

	"lastmile/internal/pkg/errs"

	"lastmile/internal/core/ports"
)

// ConfirmRelayPickupCommandHandler settles a relay collection: the order
// is delivered and its slot goes back to the pool in the same
// transaction.
type ConfirmRelayPickupCommandHandler struct {
	uowFactory UoWFactory
	sink       ports.NotificationSink
}

// NewConfirmRelayPickupCommandHandler creates a handler for relay
// collections.
func NewConfirmRelayPickupCommandHandler(uowFactory UoWFactory, sink ports.NotificationSink) ConfirmRelayPickupCommandHandler {
	return ConfirmRelayPickupCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle processes the collection. The order must sit at a relay point.
func (h ConfirmRelayPickupCommandHandler) Handle(ctx context.Context, command ConfirmRelayPickupCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if o.Relay() == nil {
		return errs.NewValueIsRequiredError("relay point id")
	}

	rp, err := uow.RelayPointRepository().Get(ctx, *o.Relay())
	if err != nil {
		return err
	}

	if err := o.Deliver(); err != nil {
		return err
	}
	if err := rp.Release(requiredStorageType(o)); err != nil {
		return err
	}

	uow.TrackAggregate(o)
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err := uow.RelayPointRepository().Update(ctx, rp); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}
