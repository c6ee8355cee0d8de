package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInReadyStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockRelayPointRepository struct{ mock.Mock }

func (m *MockRelayPointRepository) Add(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRelayPointRepository) Update(ctx context.Context, aggregate *relaypoint.RelayPoint) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRelayPointRepository) Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relaypoint.RelayPoint), args.Error(1)
}

func (m *MockRelayPointRepository) GetAll(ctx context.Context) ([]*relaypoint.RelayPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*relaypoint.RelayPoint), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

// MockUoW mocks transaction control and repository access. Event
// tracking is implemented concretely so tests can drain events the way
// handlers do.
type MockUoW struct {
	mock.Mock
	tracked []ports.Aggregate
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TrackAggregate(aggregate ports.Aggregate) {
	m.tracked = append(m.tracked, aggregate)
}

func (m *MockUoW) TrackedEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, aggregate := range m.tracked {
		events = append(events, aggregate.Events()...)
		aggregate.ClearEvents()
	}
	return events
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) RelayPointRepository() ports.RelayPointRepository {
	args := m.Called()
	return args.Get(0).(ports.RelayPointRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockNotificationSink struct {
	published []kernel.DomainEvent
}

func (m *MockNotificationSink) Publish(_ context.Context, event kernel.DomainEvent) error {
	m.published = append(m.published, event)
	return nil
}

// test fixtures

func geoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func orderItems(t *testing.T, coldChain bool) []order.Item {
	t.Helper()
	item, err := order.NewItem("groceries", 2, coldChain)
	require.NoError(t, err)
	return []order.Item{item}
}

func buildOrderAt(t *testing.T, deliveryType order.DeliveryType, coldChain bool, target order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), deliveryType,
		geoPoint(t, 48.8566, 2.3522), geoPoint(t, 48.87, 2.36),
		orderItems(t, coldChain), 2500)
	require.NoError(t, err)

	for o.Status() != target {
		switch o.Status() {
		case order.StatusPending:
			require.NoError(t, o.Confirm())
		case order.StatusConfirmed:
			require.NoError(t, o.StartPreparing())
		case order.StatusPreparing:
			require.NoError(t, o.MarkReady(nil))
		default:
			t.Fatalf("cannot build order at status %s", target)
		}
	}

	// Drain the transitions above so tests only see events from the
	// operation under test.
	o.ClearEvents()
	return o
}

func buildDriver(t *testing.T, coldBox bool) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), "Jules", driver.VehicleTypeScooter,
		coldBox, geoPoint(t, 48.8566, 2.3522), driver.DefaultMaxActiveOrders)
	require.NoError(t, err)
	return d
}

func buildRelayPoint(t *testing.T, storageType relaypoint.StorageType, total, used int) *relaypoint.RelayPoint {
	t.Helper()
	c, err := relaypoint.RestoreStorageCapacity(storageType, total, used)
	require.NoError(t, err)

	windows := map[time.Weekday]relaypoint.TimeWindow{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		w, err := relaypoint.NewTimeWindow(0, 24*60)
		require.NoError(t, err)
		windows[day] = w
	}
	s, err := relaypoint.NewSchedule(windows)
	require.NoError(t, err)

	rp, err := relaypoint.NewRelayPoint(kernel.NewUUID(), "Corner Shop",
		geoPoint(t, 48.871, 2.361), s, []relaypoint.StorageCapacity{c})
	require.NoError(t, err)
	return rp
}
