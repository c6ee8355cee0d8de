package commands

import (
	"context"
	"math"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// Driver fee for one leg: a flat base plus a per-kilometre component on
// the origin-to-destination distance.
const (
	baseDriverFeeCents  = 300
	perKmDriverFeeCents = 60
)

// AssignReadyOrdersResult summarizes one dispatch run.
type AssignReadyOrdersResult struct {
	// AssignedCount is the number of orders paired with a driver.
	AssignedCount int

	// UnassignedCount is the number of orders left ready for the next run.
	UnassignedCount int

	// AvgOrdersPerDriver is the assigned load spread over the drivers
	// that received work this run.
	AvgOrdersPerDriver float64
}

// AssignReadyOrdersCommandHandler runs the batch dispatch: plan with the
// domain planner, then apply every pairing to the aggregates inside one
// transaction. Orders nobody can take stay ready; a cold-chain mismatch
// is recorded as a warning event, not a rejection.
type AssignReadyOrdersCommandHandler struct {
	uowFactory UoWFactory
	planner    services.DispatchPlanner
	estimator  services.GeoEstimator
	sink       ports.NotificationSink
}

// NewAssignReadyOrdersCommandHandler creates a handler for batch
// dispatch runs.
func NewAssignReadyOrdersCommandHandler(
	uowFactory UoWFactory,
	planner services.DispatchPlanner,
	estimator services.GeoEstimator,
	sink ports.NotificationSink,
) AssignReadyOrdersCommandHandler {
	return AssignReadyOrdersCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		estimator:  estimator,
		sink:       sink,
	}
}

// Handle executes one dispatch run and returns its summary. A run with
// nothing to assign is a no-op, not an error.
func (h AssignReadyOrdersCommandHandler) Handle(ctx context.Context, command AssignReadyOrdersCommand) (AssignReadyOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return AssignReadyOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignReadyOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	readyOrders, err := uow.OrderRepository().GetAllInReadyStatus(ctx)
	if err != nil {
		return AssignReadyOrdersResult{}, err
	}
	if len(readyOrders) == 0 {
		return AssignReadyOrdersResult{}, nil
	}

	drivers, err := uow.DriverRepository().GetAllAvailable(ctx)
	if err != nil {
		return AssignReadyOrdersResult{}, err
	}

	plan := h.planner.PlanAssignments(readyOrders, drivers)

	ordersByID := make(map[string]*order.Order, len(readyOrders))
	for _, o := range readyOrders {
		ordersByID[o.ID().String()] = o
	}
	driversByID := make(map[string]*driver.Driver, len(drivers))
	for _, d := range drivers {
		driversByID[d.ID().String()] = d
	}

	now := time.Now().UTC()
	applied := 0

	for _, a := range plan.Assignments {
		o := ordersByID[a.OrderID.String()]
		d := driversByID[a.DriverID.String()]

		if err := h.applyAssignment(ctx, uow, o, d, a.ColdChainViolation, now); err != nil {
			// A failed pairing leaves the order ready for the next run;
			// the rest of the batch still goes through.
			continue
		}
		applied++
	}

	driversUsed := make(map[string]struct{})
	for _, a := range plan.Assignments {
		driversUsed[a.DriverID.String()] = struct{}{}
	}

	if err := uow.Commit(ctx); err != nil {
		return AssignReadyOrdersResult{}, err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())

	result := AssignReadyOrdersResult{
		AssignedCount:   applied,
		UnassignedCount: len(readyOrders) - applied,
	}
	if len(driversUsed) > 0 {
		result.AvgOrdersPerDriver = float64(applied) / float64(len(driversUsed))
	}
	return result, nil
}

// applyAssignment mutates one order/driver pair and writes the delivery
// leg.
func (h AssignReadyOrdersCommandHandler) applyAssignment(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	d *driver.Driver,
	coldChainViolation bool,
	now time.Time,
) error {
	if err := o.Assign(d.ID()); err != nil {
		return err
	}
	if err := d.TakeOrder(); err != nil {
		return err
	}
	if coldChainViolation {
		if err := o.RecordColdChainViolation(); err != nil {
			return err
		}
	}

	leg, err := h.buildDeliveryLeg(o, d, now)
	if err != nil {
		return err
	}

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}
	if err := uow.DeliveryRepository().Add(ctx, leg); err != nil {
		return err
	}

	// Track only once the pairing is fully written; a skipped pairing must
	// not publish events for a transition that was never persisted.
	uow.TrackAggregate(o)
	return nil
}

func (h AssignReadyOrdersCommandHandler) buildDeliveryLeg(o *order.Order, d *driver.Driver, now time.Time) (*delivery.Delivery, error) {
	condition := h.estimator.TrafficConditionAt(now)
	estimated := h.estimator.EstimatePickupMinutes(d.Location(), o.Origin(), condition) +
		h.estimator.EstimateTravelMinutes(o.Origin(), o.Destination(), condition)

	distKm := o.Origin().DistanceKm(o.Destination())
	fee := int64(baseDriverFeeCents + math.Round(distKm*perKmDriverFeeCents))

	return delivery.NewDelivery(
		kernel.NewUUID(),
		o.ID(),
		d.ID(),
		o.Origin().String(),
		o.Origin(),
		fee,
		estimated,
	)
}
