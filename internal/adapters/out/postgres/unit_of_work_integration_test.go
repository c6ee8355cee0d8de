package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/driverrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/relayrepo"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/relaypoint"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based unit of work against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts the PostgreSQL container, opens the connection and
// migrates the schema used by the repositories.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&relayrepo.RelayPointDTO{},
		&relayrepo.RelayCapacityDTO{},
		&deliveryrepo.DeliveryDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables so tests do not interfere.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drivers, relay_points, relay_capacities, deliveries").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory hands out isolated
// unit of work instances with working repository accessors.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow2.RelayPointRepository())
	suite.NotNil(uow2.DeliveryRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, repeated begin,
// commit and rollback behave as documented.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionErrors verifies commit and rollback without
// an active transaction report an error.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_OrderRoundTrip verifies an order survives the mapping
// to the database and back, including items and timestamps.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(testOrder.TotalAmountCents(), retrieved.TotalAmountCents())
	suite.Len(retrieved.Items(), len(testOrder.Items()))

	_, ok := retrieved.TimestampFor(order.StatusPending)
	suite.True(ok, "Pending timestamp should round-trip")
}

// TestUnitOfWork_StaleOrderUpdate verifies the optimistic-lock guard:
// the second writer loses and gets a StaleStateError.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleOrderUpdate() {
	ctx := context.Background()

	testOrder := createTestOrder(suite.T())
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	repo := suite.factory.Create().OrderRepository()

	first, err := repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.Confirm())
	err = repo.Update(ctx, second)
	suite.Require().Error(err)

	var staleErr *errs.StaleStateError
	suite.ErrorAs(err, &staleErr)
}

// TestUnitOfWork_StaleDriverUpdate verifies the active-order count is
// guarded by the driver's optimistic-lock version: two writers loading
// the same load cannot both commit an increment.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleDriverUpdate() {
	ctx := context.Background()

	testDriver := createTestDriver(suite.T())
	repo := suite.factory.Create().DriverRepository()
	suite.Require().NoError(repo.Add(ctx, testDriver))

	first, err := repo.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TakeOrder())
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.TakeOrder())
	err = repo.Update(ctx, second)
	suite.Require().Error(err)

	var staleErr *errs.StaleStateError
	suite.ErrorAs(err, &staleErr)

	retrieved, err := repo.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrieved.ActiveOrders())
}

// TestUnitOfWork_StaleRelayReservation verifies slot reservations are
// guarded by the relay point's optimistic-lock version: two writers that
// loaded the same slot counts cannot both commit a reservation, so a
// one-slot pool never ends up double-booked.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleRelayReservation() {
	ctx := context.Background()

	testRelay := createTestRelayPoint(suite.T())
	repo := suite.factory.Create().RelayPointRepository()
	suite.Require().NoError(repo.Add(ctx, testRelay))

	first, err := repo.Get(ctx, testRelay.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, testRelay.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Reserve(relaypoint.StorageTypeAmbient))
	suite.Require().NoError(repo.Update(ctx, first))

	suite.Require().NoError(second.Reserve(relaypoint.StorageTypeAmbient))
	err = repo.Update(ctx, second)
	suite.Require().Error(err)

	var staleErr *errs.StaleStateError
	suite.ErrorAs(err, &staleErr)

	retrieved, err := repo.Get(ctx, testRelay.ID())
	suite.Require().NoError(err)
	capacity, err := retrieved.Capacity(relaypoint.StorageTypeAmbient)
	suite.Require().NoError(err)
	suite.Equal(1, capacity.Used())
}

// TestUnitOfWork_DriverAvailabilityPersists verifies that flipping a
// driver off shift writes the false value through.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DriverAvailabilityPersists() {
	ctx := context.Background()
	repo := suite.factory.Create().DriverRepository()

	testDriver := createTestDriver(suite.T())
	suite.Require().NoError(repo.Add(ctx, testDriver))

	suite.Require().NoError(testDriver.SetAvailable(false))
	suite.Require().NoError(repo.Update(ctx, testDriver))

	retrieved, err := repo.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsAvailable())

	available, err := repo.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Empty(available)
}

// TestUnitOfWork_RelayPointRoundTrip verifies the relay point with its
// capacity pools and schedule survives persistence, and that slot
// counters move through Update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RelayPointRoundTrip() {
	ctx := context.Background()
	repo := suite.factory.Create().RelayPointRepository()

	testRelay := createTestRelayPoint(suite.T())
	suite.Require().NoError(repo.Add(ctx, testRelay))

	suite.Require().NoError(testRelay.Reserve(relaypoint.StorageTypeAmbient))
	suite.Require().NoError(repo.Update(ctx, testRelay))

	retrieved, err := repo.Get(ctx, testRelay.ID())
	suite.Require().NoError(err)

	capacity, err := retrieved.Capacity(relaypoint.StorageTypeAmbient)
	suite.Require().NoError(err)
	suite.Equal(1, capacity.Used())
	suite.Equal(10, capacity.Total())

	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	suite.True(retrieved.IsOpenAt(monday))

	all, err := repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 1)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards changes
// across repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")
}

// TestUnitOfWork_AssignmentWorkflow runs the dispatch write path inside
// one transaction: order assigned, driver loaded, delivery leg created.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(testOrder.StartPreparing())
	suite.Require().NoError(testOrder.MarkReady(nil))
	testOrder.ClearEvents()

	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	suite.Require().NoError(testOrder.Assign(testDriver.ID()))
	suite.Require().NoError(testDriver.TakeOrder())

	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Update(ctx, testDriver))

	leg, err := delivery.NewDelivery(kernel.NewUUID(), testOrder.ID(), testDriver.ID(),
		testOrder.Origin().String(), testOrder.Origin(), 450, 18)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, leg))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssigned, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.Driver())
	suite.True(testDriver.ID().IsEqual(*retrievedOrder.Driver()))

	retrievedDriver, err := newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrievedDriver.ActiveOrders())

	retrievedLeg, err := newUow.DeliveryRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testDriver.ID().IsEqual(retrievedLeg.DriverID()))
}

// TestUnitOfWork_ReadyBacklogOrder verifies GetAllInReadyStatus returns
// ready orders oldest first and skips everything else.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReadyBacklogOrder() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	pendingOrder := createTestOrder(suite.T())
	suite.Require().NoError(repo.Add(ctx, pendingOrder))

	readyOrder := createTestOrder(suite.T())
	suite.Require().NoError(readyOrder.Confirm())
	suite.Require().NoError(readyOrder.StartPreparing())
	suite.Require().NoError(readyOrder.MarkReady(nil))
	readyOrder.ClearEvents()
	suite.Require().NoError(repo.Add(ctx, readyOrder))

	backlog, err := repo.GetAllInReadyStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(backlog, 1)
	suite.True(readyOrder.ID().IsEqual(backlog[0].ID()))
}

// TestUnitOfWork_RepositoryIsolation verifies concurrent transactions do
// not see each other's uncommitted writes.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder(suite.T())
	order2 := createTestOrder(suite.T())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

// createTestOrder creates a valid pending order for testing purposes.
func createTestOrder(t *testing.T) *order.Order {
	t.Helper()

	origin, err := kernel.NewGeoPoint(48.8566, 2.3522)
	if err != nil {
		t.Fatal(err)
	}
	destination, err := kernel.NewGeoPoint(48.8606, 2.3376)
	if err != nil {
		t.Fatal(err)
	}

	item, err := order.NewItem("Noodle box", 2, false)
	if err != nil {
		t.Fatal(err)
	}

	testOrder, err := order.NewOrder(kernel.NewUUID(), order.DeliveryTypeHomeDelivery,
		origin, destination, []order.Item{item}, 2400)
	if err != nil {
		t.Fatal(err)
	}
	testOrder.ClearEvents()
	return testOrder
}

// createTestDriver creates an available driver for testing purposes.
func createTestDriver(t *testing.T) *driver.Driver {
	t.Helper()

	location, err := kernel.NewGeoPoint(48.8534, 2.3488)
	if err != nil {
		t.Fatal(err)
	}

	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Test Driver",
		driver.VehicleTypeBike, false, location, driver.DefaultMaxActiveOrders)
	if err != nil {
		t.Fatal(err)
	}
	return testDriver
}

// createTestRelayPoint creates a relay point with an ambient pool of ten
// slots, open around the clock all week.
func createTestRelayPoint(t *testing.T) *relaypoint.RelayPoint {
	t.Helper()

	location, err := kernel.NewGeoPoint(48.8712, 2.3616)
	if err != nil {
		t.Fatal(err)
	}

	window, err := relaypoint.NewTimeWindow(0, 24*60)
	if err != nil {
		t.Fatal(err)
	}
	windows := make(map[time.Weekday]relaypoint.TimeWindow)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		windows[weekday] = window
	}
	schedule, err := relaypoint.NewSchedule(windows)
	if err != nil {
		t.Fatal(err)
	}

	capacity, err := relaypoint.NewStorageCapacity(relaypoint.StorageTypeAmbient, 10)
	if err != nil {
		t.Fatal(err)
	}

	testRelay, err := relaypoint.NewRelayPoint(kernel.NewUUID(), "Test Relay",
		location, schedule, []relaypoint.StorageCapacity{capacity})
	if err != nil {
		t.Fatal(err)
	}
	return testRelay
}

// TestUnitOfWorkIntegrationTestSuite runs the integration test suite.
// Requires Docker to be available.
func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
