// Package postgres provides the GORM-backed unit of work tying the
// repositories to a shared database transaction.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"lastmile/internal/adapters/out/postgres/deliveryrepo"
	"lastmile/internal/adapters/out/postgres/driverrepo"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/relayrepo"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

// GormUnitOfWorkFactory creates GormUnitOfWork instances.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a new unit of work factory.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work for a single command.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements the UnitOfWork pattern on a GORM
// transaction. Repositories handed out before Begin operate on the bare
// connection; after Begin they share the transaction until Commit or
// Rollback ends it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []ports.Aggregate
}

// Begin starts a new database transaction. Calling Begin with a
// transaction already active is a no-op.
func (u *GormUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	u.tx = tx
	return nil
}

// Commit commits the current transaction.
func (u *GormUnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback rolls back the current transaction.
func (u *GormUnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// TrackAggregate registers an aggregate for post-commit event
// collection.
func (u *GormUnitOfWork) TrackAggregate(aggregate ports.Aggregate) {
	u.tracked = append(u.tracked, aggregate)
}

// TrackedEvents drains the recorded events of every tracked aggregate.
func (u *GormUnitOfWork) TrackedEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, aggregate := range u.tracked {
		events = append(events, aggregate.Events()...)
		aggregate.ClearEvents()
	}
	u.tracked = nil
	return events
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the bare connection when none is active.
func (u *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(u.conn())
}

// DriverRepository returns a driver repository bound to the current
// transaction.
func (u *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(u.conn())
}

// RelayPointRepository returns a relay point repository bound to the
// current transaction.
func (u *GormUnitOfWork) RelayPointRepository() ports.RelayPointRepository {
	return relayrepo.NewGormRelayPointRepository(u.conn())
}

// DeliveryRepository returns a delivery repository bound to the current
// transaction.
func (u *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(u.conn())
}

func (u *GormUnitOfWork) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
