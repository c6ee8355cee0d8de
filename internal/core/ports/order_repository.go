// Package ports defines the driven-side contracts of the dispatch core:
// repository interfaces per aggregate, the unit of work binding them into
// one transaction, and the notification sink for domain events.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// version-guarded: a stale aggregate loses with errs.ErrStaleState and
	// the caller re-reads and retries.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInReadyStatus retrieves the ready orders awaiting dispatch,
	// oldest ready timestamp first.
	GetAllInReadyStatus(ctx context.Context) ([]*order.Order, error)
}
