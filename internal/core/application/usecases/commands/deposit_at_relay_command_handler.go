package commands

import (
	"context"
	"fmt"

	"lastmile/internal/pkg/errs"

	"lastmile/internal/core/ports"
)

// DepositAtRelayCommandHandler settles a relay drop-off: reserve the slot,
// move the order to at_relay and free the driver, all in one transaction.
// A full slot pool fails the whole operation and the order stays with the
// driver, to be re-routed.
type DepositAtRelayCommandHandler struct {
	uowFactory UoWFactory
	sink       ports.NotificationSink
}

// NewDepositAtRelayCommandHandler creates a handler for relay deposits.
func NewDepositAtRelayCommandHandler(uowFactory UoWFactory, sink ports.NotificationSink) DepositAtRelayCommandHandler {
	return DepositAtRelayCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle processes the deposit. Only the carrying driver may deposit;
// the order must have a pinned relay point.
func (h DepositAtRelayCommandHandler) Handle(ctx context.Context, command DepositAtRelayCommand) error {
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

	assigned := o.Driver()
	if assigned == nil || !assigned.IsEqual(command.DriverID()) {
		return fmt.Errorf("%w: order is not assigned to this driver", ErrActorNotAllowed)
	}
	if o.Relay() == nil {
		return errs.NewValueIsRequiredError("relay point id")
	}

	rp, err := uow.RelayPointRepository().Get(ctx, *o.Relay())
	if err != nil {
		return err
	}

	// Reservation first: a full pool aborts before the order moves.
	if err := rp.Reserve(requiredStorageType(o)); err != nil {
		return err
	}
	if err := o.DepositAtRelay(); err != nil {
		return err
	}

	d, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}
	if err := d.CompleteOrder(); err != nil {
		return err
	}

	uow.TrackAggregate(o)
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err := uow.RelayPointRepository().Update(ctx, rp); err != nil {
		return err
	}
	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}
