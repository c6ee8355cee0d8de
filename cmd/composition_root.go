package cmd

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lastmile/internal/adapters/out/notify"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	sink       ports.NotificationSink
	estimator  services.GeoEstimator
	scorer     services.DispatchScorer
	planner    services.DispatchPlanner
	selector   services.RelaySelector
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	scorer := services.NewDispatchScorer()
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sink:       notify.NewZapNotificationSink(logger),
		estimator:  services.NewGeoEstimator(),
		scorer:     scorer,
		planner:    services.NewDispatchPlanner(scorer),
		selector:   services.NewRelaySelector(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.sink)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateRelayPointCommandHandler() commands.CreateRelayPointCommandHandler {
	var f commands.RelayPointUoWFactory = FuncRelayPointUoWFactory(func() commands.RelayPointUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRelayPointCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.fullUoWFactory(), c.selector, c.sink)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.fullUoWFactory(), c.sink)
}

func (c *CompositionRoot) CreateAssignReadyOrdersCommandHandler() commands.AssignReadyOrdersCommandHandler {
	return commands.NewAssignReadyOrdersCommandHandler(c.fullUoWFactory(), c.planner, c.estimator, c.sink)
}

func (c *CompositionRoot) CreateAssignOrderToDriverCommandHandler() commands.AssignOrderToDriverCommandHandler {
	return commands.NewAssignOrderToDriverCommandHandler(c.fullUoWFactory(), c.estimator, c.sink)
}

func (c *CompositionRoot) CreateDepositAtRelayCommandHandler() commands.DepositAtRelayCommandHandler {
	return commands.NewDepositAtRelayCommandHandler(c.fullUoWFactory(), c.sink)
}

func (c *CompositionRoot) CreateConfirmRelayPickupCommandHandler() commands.ConfirmRelayPickupCommandHandler {
	return commands.NewConfirmRelayPickupCommandHandler(c.fullUoWFactory(), c.sink)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetDriverAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetReadyOrdersQueryHandler() queries.GetReadyOrdersQueryHandler {
	return queries.NewGetReadyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRelaySaturationQueryHandler() queries.GetRelaySaturationQueryHandler {
	return queries.NewGetRelaySaturationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncRelayPointUoWFactory func() commands.RelayPointUoW

func (f FuncRelayPointUoWFactory) Create() commands.RelayPointUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
