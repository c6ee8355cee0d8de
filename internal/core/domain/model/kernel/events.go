package kernel

import "time"

// DomainEvent is implemented by the events aggregates record while handling
// commands. Events are collected by the unit of work and published through
// the NotificationSink port after the owning transaction commits; delivery
// is best-effort.
type DomainEvent interface {
	// EventName returns a stable, machine-readable event identifier,
	// e.g. "order.status_changed".
	EventName() string

	// OccurredAt returns the time the event was recorded.
	OccurredAt() time.Time
}
