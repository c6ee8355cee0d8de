package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// MarkOrderReadyCommandHandler moves an order from preparing to ready.
// For relay deliveries it runs the relay selection first, so the order
// leaves this handler knowing where it will be dropped off.
type MarkOrderReadyCommandHandler struct {
	uowFactory UoWFactory
	selector   services.RelaySelector
	sink       ports.NotificationSink
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready
// transition.
func NewMarkOrderReadyCommandHandler(
	uowFactory UoWFactory,
	selector services.RelaySelector,
	sink ports.NotificationSink,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		selector:   selector,
		sink:       sink,
	}
}

// Handle marks the order ready. Relay orders without an open, in-range
// relay with a free slot of the required storage type fail with
// services.ErrNoRelayAvailable and stay in preparing.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, command MarkOrderReadyCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	var relayID *kernel.UUID
	if aggregate.DeliveryType() == order.DeliveryTypeRelayPoint {
		relays, err := uow.RelayPointRepository().GetAll(ctx)
		if err != nil {
			return err
		}

		chosen, err := h.selector.SuggestRelay(
			aggregate.Destination(),
			requiredStorageType(aggregate),
			relays,
			time.Now().UTC(),
		)
		if err != nil {
			return err
		}

		id := chosen.ID()
		relayID = &id
	}

	if err := aggregate.MarkReady(relayID); err != nil {
		return err
	}

	uow.TrackAggregate(aggregate)
	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}

// requiredStorageType maps an order's contents to the relay slot type it
// needs: a cold slot when any item requires the cold chain, an ambient
// slot otherwise.
func requiredStorageType(aggregate *order.Order) relaypoint.StorageType {
	if aggregate.RequiresColdChain() {
		return relaypoint.StorageTypeCold
	}
	return relaypoint.StorageTypeAmbient
}
