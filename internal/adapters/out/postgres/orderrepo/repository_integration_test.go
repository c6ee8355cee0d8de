package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repository = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestAdd_And_Get verifies a freshly created order round-trips with its
// items, coordinates and lifecycle timestamps intact.
func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal(order.DeliveryTypeHomeDelivery, retrieved.DeliveryType())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.InDelta(testOrder.Origin().Latitude(), retrieved.Origin().Latitude(), 1e-9)
	suite.InDelta(testOrder.Destination().Longitude(), retrieved.Destination().Longitude(), 1e-9)
	suite.Equal(testOrder.TotalAmountCents(), retrieved.TotalAmountCents())

	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("Salmon bowl", retrieved.Items()[0].Name())
	suite.True(retrieved.Items()[0].RequiresColdChain())
	suite.Equal(3, retrieved.Items()[1].Quantity())

	pendingAt, ok := retrieved.TimestampFor(order.StatusPending)
	suite.True(ok)
	suite.WithinDuration(time.Now().UTC(), pendingAt, time.Minute)
}

// TestGet_NotFound verifies missing rows map to ObjectNotFoundError.
func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

// TestUpdate_BumpsVersion verifies a successful update advances the
// stored version so a later load carries the new value.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	initialVersion := loaded.Version()

	suite.Require().NoError(loaded.Confirm())
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, reloaded.Status())
	suite.Equal(initialVersion+1, reloaded.Version())
}

// TestUpdate_StaleVersion verifies the optimistic-lock conflict path.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel())
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var staleErr *errs.StaleStateError
	suite.ErrorAs(err, &staleErr)

	// The winning write is untouched.
	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, reloaded.Status())
}

// TestUpdate_MissingRow verifies updating a never-persisted order maps
// to ObjectNotFoundError rather than a stale-state conflict.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingRow() {
	ctx := context.Background()
	testOrder := suite.newPendingOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

// TestGetAllInReadyStatus verifies the dispatch backlog comes back
// oldest first and contains only ready orders.
func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInReadyStatus() {
	ctx := context.Background()

	older := suite.newReadyOrder()
	time.Sleep(10 * time.Millisecond)
	newer := suite.newReadyOrder()
	pending := suite.newPendingOrder()

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	backlog, err := suite.repository.GetAllInReadyStatus(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(backlog, 2)
	suite.True(older.ID().IsEqual(backlog[0].ID()))
	suite.True(newer.ID().IsEqual(backlog[1].ID()))
}

// newPendingOrder builds a valid two-item home delivery order.
func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder() *order.Order {
	origin, err := kernel.NewGeoPoint(48.8566, 2.3522)
	suite.Require().NoError(err)
	destination, err := kernel.NewGeoPoint(48.8606, 2.3376)
	suite.Require().NoError(err)

	coldItem, err := order.NewItem("Salmon bowl", 1, true)
	suite.Require().NoError(err)
	dryItem, err := order.NewItem("Spring rolls", 3, false)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), order.DeliveryTypeHomeDelivery,
		origin, destination, []order.Item{coldItem, dryItem}, 3650)
	suite.Require().NoError(err)
	testOrder.ClearEvents()
	return testOrder
}

// newReadyOrder builds an order advanced to the ready state.
func (suite *OrderRepositoryIntegrationTestSuite) newReadyOrder() *order.Order {
	testOrder := suite.newPendingOrder()
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(testOrder.StartPreparing())
	suite.Require().NoError(testOrder.MarkReady(nil))
	testOrder.ClearEvents()
	return testOrder
}

// TestOrderRepositoryIntegrationTestSuite runs the integration test
// suite. Requires Docker to be available.
func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
