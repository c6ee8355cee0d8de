// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence and post-commit event publishing.
package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers depend on the narrowest interface that covers the
// aggregates they touch, which keeps test doubles small.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EventTracker collects aggregates whose recorded domain events are
	// published after a successful commit.
	EventTracker interface {
		TrackAggregate(aggregate ports.Aggregate)
		TrackedEvents() []kernel.DomainEvent
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within a
	// transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// RelayPointRepoFactory provides access to the relay-point repository
	// within a transaction.
	RelayPointRepoFactory interface {
		RelayPointRepository() ports.RelayPointRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository
	// within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		EventTracker
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// RelayPointUoW manages transactions for relay-point-only operations.
	RelayPointUoW interface {
		TxManager
		RelayPointRepoFactory
	}

	// RelayPointUoWFactory creates new relay-point unit of work instances.
	RelayPointUoWFactory interface {
		Create() RelayPointUoW
	}

	// UoW manages transactions across every aggregate of the dispatch
	// core. Used by commands that coordinate orders with drivers, relay
	// points or delivery legs.
	UoW interface {
		TxManager
		EventTracker
		OrderRepoFactory
		DriverRepoFactory
		RelayPointRepoFactory
		DeliveryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// publishEvents forwards the events drained from a committed unit of work
// to the sink. Delivery is best effort: failures are the sink's problem
// to log, business state is already committed.
func publishEvents(ctx context.Context, sink ports.NotificationSink, events []kernel.DomainEvent) {
	if sink == nil {
		return
	}
	for _, event := range events {
		_ = sink.Publish(ctx, event)
	}
}
