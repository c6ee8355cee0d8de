package ports

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery legs.
type DeliveryRepository interface {
	// Add persists a new delivery leg to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// GetByOrderID retrieves the delivery leg for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
