package order

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// StatusChangedEvent is recorded on every committed lifecycle transition.
// The notification collaborator consumes it to inform the affected actors;
// the core itself never delivers notifications.
type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}

// EventName implements kernel.DomainEvent.
func (e StatusChangedEvent) EventName() string {
	return "order.status_changed"
}

// OccurredAt implements kernel.DomainEvent.
func (e StatusChangedEvent) OccurredAt() time.Time {
	return e.At
}

// ColdChainViolationEvent is recorded when a cold-chain order is assigned
// to a driver without a cold box. Assignment proceeds anyway; the event is
// a warning for the operations collaborator, not a rejection.
type ColdChainViolationEvent struct {
	OrderID  kernel.UUID
	DriverID kernel.UUID
	At       time.Time
}

// EventName implements kernel.DomainEvent.
func (e ColdChainViolationEvent) EventName() string {
	return "order.cold_chain_violation"
}

// OccurredAt implements kernel.DomainEvent.
func (e ColdChainViolationEvent) OccurredAt() time.Time {
	return e.At
}
