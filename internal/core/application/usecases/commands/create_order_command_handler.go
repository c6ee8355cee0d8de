package commands

import (
	"context"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
)

// CreateOrderCommandHandler persists new orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	sink       ports.NotificationSink
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, sink ports.NotificationSink) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
	}
}

// Handle creates the order aggregate in pending status and stores it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		command.OrderID(),
		command.DeliveryType(),
		command.Origin(),
		command.Destination(),
		command.Items(),
		command.TotalAmountCents(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	uow.TrackAggregate(aggregate)
	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}
