package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
)

// RelayPointRepository defines the persistence contract for relay-point
// aggregates and their slot pools.
type RelayPointRepository interface {
	// Add persists a new relay-point aggregate to storage.
	Add(ctx context.Context, aggregate *relaypoint.RelayPoint) error

	// Update persists changes to an existing relay-point aggregate,
	// including its slot pool counters.
	Update(ctx context.Context, aggregate *relaypoint.RelayPoint) error

	// Get retrieves a relay-point aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error)

	// GetAll retrieves every relay point, for selection and saturation
	// reporting.
	GetAll(ctx context.Context) ([]*relaypoint.RelayPoint, error)
}
