package commands

import (
	"context"

	"lastmile/internal/core/domain/model/relaypoint"
)

// CreateRelayPointCommandHandler persists new relay points.
type CreateRelayPointCommandHandler struct {
	uowFactory RelayPointUoWFactory
}

// NewCreateRelayPointCommandHandler creates a handler for relay-point
// registration.
func NewCreateRelayPointCommandHandler(uowFactory RelayPointUoWFactory) CreateRelayPointCommandHandler {
	return CreateRelayPointCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the relay-point aggregate and stores it.
func (h CreateRelayPointCommandHandler) Handle(ctx context.Context, command CreateRelayPointCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := relaypoint.NewRelayPoint(
		command.RelayPointID(),
		command.Name(),
		command.Location(),
		command.Schedule(),
		command.Capacities(),
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

	if err := uow.RelayPointRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
