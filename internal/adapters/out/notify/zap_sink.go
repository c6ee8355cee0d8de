// Package notify delivers domain events to the outside world. The zap
// sink is the default wiring: it writes structured notification records
// that downstream systems can ship wherever customer, vendor and driver
// notifications actually go.
package notify

import (
	"context"

	"go.uber.org/zap"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// ZapNotificationSink implements ports.NotificationSink on a zap logger.
type ZapNotificationSink struct {
	logger *zap.Logger
}

// NewZapNotificationSink creates a notification sink writing to the
// given logger.
func NewZapNotificationSink(logger *zap.Logger) *ZapNotificationSink {
	return &ZapNotificationSink{
		logger: logger.Named("notify"),
	}
}

// Publish emits one structured record per domain event. Known event
// types get their payload fields broken out; anything else is logged by
// name only so new events never get dropped silently.
func (s *ZapNotificationSink) Publish(_ context.Context, event kernel.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event", event.EventName()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case order.StatusChangedEvent:
		fields = append(fields,
			zap.String("order_id", e.OrderID.String()),
			zap.String("from", e.From.String()),
			zap.String("to", e.To.String()),
		)
	case order.ColdChainViolationEvent:
		fields = append(fields,
			zap.String("order_id", e.OrderID.String()),
			zap.String("driver_id", e.DriverID.String()),
		)
		s.logger.Warn("cold chain violation", fields...)
		return nil
	}

	s.logger.Info("domain event", fields...)
	return nil
}
