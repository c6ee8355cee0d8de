package commands

import (
	"context"
	"math"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
)

// AssignOrderToDriverCommandHandler applies a manual assignment. The
// chosen driver must still be available with remaining capacity and the
// order must still be ready; a cold-chain mismatch is recorded as a
// warning, matching the batch dispatcher's behavior.
type AssignOrderToDriverCommandHandler struct {
	uowFactory UoWFactory
	estimator  services.GeoEstimator
	sink       ports.NotificationSink
}

// NewAssignOrderToDriverCommandHandler creates a handler for manual
// assignments.
func NewAssignOrderToDriverCommandHandler(
	uowFactory UoWFactory,
	estimator services.GeoEstimator,
	sink ports.NotificationSink,
) AssignOrderToDriverCommandHandler {
	return AssignOrderToDriverCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		sink:       sink,
	}
}

// Handle assigns the order to the driver inside one transaction.
func (h AssignOrderToDriverCommandHandler) Handle(ctx context.Context, command AssignOrderToDriverCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	d, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	if err := o.Assign(d.ID()); err != nil {
		return err
	}
	if err := d.TakeOrder(); err != nil {
		return err
	}
	if o.RequiresColdChain() && !d.HasColdBox() {
		if err := o.RecordColdChainViolation(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	condition := h.estimator.TrafficConditionAt(now)
	estimated := h.estimator.EstimatePickupMinutes(d.Location(), o.Origin(), condition) +
		h.estimator.EstimateTravelMinutes(o.Origin(), o.Destination(), condition)

	distKm := o.Origin().DistanceKm(o.Destination())
	fee := int64(baseDriverFeeCents + math.Round(distKm*perKmDriverFeeCents))

	leg, err := delivery.NewDelivery(kernel.NewUUID(), o.ID(), d.ID(),
		o.Origin().String(), o.Origin(), fee, estimated)
	if err != nil {
		return err
	}

	uow.TrackAggregate(o)
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}
	if err := uow.DeliveryRepository().Add(ctx, leg); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.sink, uow.TrackedEvents())
	return nil
}
