package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lastmile/internal/adapters/out/notify"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

func TestZapNotificationSink_Publish_StatusChanged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := notify.NewZapNotificationSink(zap.New(core))

	event := order.StatusChangedEvent{
		OrderID: kernel.NewUUID(),
		From:    order.StatusReady,
		To:      order.StatusAssigned,
		At:      time.Now().UTC(),
	}

	err := sink.Publish(t.Context(), event)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "order.status_changed", fields["event"])
	assert.Equal(t, event.OrderID.String(), fields["order_id"])
	assert.Equal(t, "ready", fields["from"])
	assert.Equal(t, "assigned", fields["to"])
}

func TestZapNotificationSink_Publish_ColdChainViolationWarns(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := notify.NewZapNotificationSink(zap.New(core))

	event := order.ColdChainViolationEvent{
		OrderID:  kernel.NewUUID(),
		DriverID: kernel.NewUUID(),
		At:       time.Now().UTC(),
	}

	err := sink.Publish(t.Context(), event)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "order.cold_chain_violation", fields["event"])
	assert.Equal(t, event.DriverID.String(), fields["driver_id"])
}
