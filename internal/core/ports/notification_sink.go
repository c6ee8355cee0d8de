package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
)

// NotificationSink receives domain events after the transaction that
// produced them commits. Delivery is best effort: a failing sink never
// rolls back business state, callers log and move on.
type NotificationSink interface {
	// Publish forwards one domain event to the collaborators interested
	// in it.
	Publish(ctx context.Context, event kernel.DomainEvent) error
}
