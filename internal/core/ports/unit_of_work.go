package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// Aggregate is the part of an aggregate root the unit of work needs to
// collect recorded domain events after commit.
type Aggregate interface {
	// Events returns the domain events recorded since the last drain.
	Events() []kernel.DomainEvent

	// ClearEvents drains the recorded events.
	ClearEvents()
}

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, tracks aggregates whose events must be published
// after commit, and hands out repositories bound to the transaction.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// TrackAggregate registers an aggregate whose recorded events should
	// be drained by the caller once Commit succeeds.
	TrackAggregate(aggregate Aggregate)

	// TrackedEvents drains the events of every tracked aggregate. Call
	// only after a successful Commit.
	TrackedEvents() []kernel.DomainEvent

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// DriverRepository returns a DriverRepository bound to the current
	// transaction.
	DriverRepository() DriverRepository

	// RelayPointRepository returns a RelayPointRepository bound to the
	// current transaction.
	RelayPointRepository() RelayPointRepository

	// DeliveryRepository returns a DeliveryRepository bound to the current
	// transaction.
	DeliveryRepository() DeliveryRepository
}
