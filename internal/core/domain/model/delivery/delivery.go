// Package delivery contains the Delivery entity: the transport leg that
// joins an order to the driver carrying it, with the pickup details, the
// driver fee and the travel estimate captured at assignment time.
package delivery

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
// through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery records one transport leg. It is written once at assignment
// and read back for driver-facing views; lifecycle state lives on the
// order, not here.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// orderID is the order being transported
	orderID kernel.UUID

	// driverID is the driver carrying the order
	driverID kernel.UUID

	// pickupAddress is the human-readable pickup address
	pickupAddress string

	// pickupPoint is the pickup position
	pickupPoint kernel.GeoPoint

	// driverFeeCents is the driver's fee for this leg, in cents
	driverFeeCents int64

	// estimatedMinutes is the travel estimate captured at assignment
	estimatedMinutes int

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a delivery leg for an assigned order.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	driverFeeCents int64,
	estimatedMinutes int,
) (*Delivery, error) {
	d := &Delivery{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
		d.setPickupAddress(pickupAddress),
		d.setPickupPoint(pickupPoint),
		d.setDriverFeeCents(driverFeeCents),
		d.setEstimatedMinutes(estimatedMinutes),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery leg from persistence.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	pickupAddress string,
	pickupPoint kernel.GeoPoint,
	driverFeeCents int64,
	estimatedMinutes int,
) (*Delivery, error) {
	return NewDelivery(id, orderID, driverID, pickupAddress, pickupPoint, driverFeeCents, estimatedMinutes)
}

// Validate ensures the Delivery was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by identity.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the transported order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// DriverID returns the carrying driver's identifier.
func (d *Delivery) DriverID() kernel.UUID {
	return d.driverID
}

// PickupAddress returns the human-readable pickup address.
func (d *Delivery) PickupAddress() string {
	return d.pickupAddress
}

// PickupPoint returns the pickup position.
func (d *Delivery) PickupPoint() kernel.GeoPoint {
	return d.pickupPoint
}

// DriverFeeCents returns the driver's fee for this leg, in cents.
func (d *Delivery) DriverFeeCents() int64 {
	return d.driverFeeCents
}

// EstimatedMinutes returns the travel estimate captured at assignment.
func (d *Delivery) EstimatedMinutes() int {
	return d.estimatedMinutes
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	d.driverID = driverID
	return nil
}

func (d *Delivery) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}
	d.pickupAddress = pickupAddress
	return nil
}

func (d *Delivery) setPickupPoint(pickupPoint kernel.GeoPoint) error {
	if err := pickupPoint.Validate(); err != nil {
		return err
	}
	d.pickupPoint = pickupPoint
	return nil
}

func (d *Delivery) setDriverFeeCents(driverFeeCents int64) error {
	if driverFeeCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("driver fee",
			fmt.Errorf("%d is negative", driverFeeCents))
	}
	d.driverFeeCents = driverFeeCents
	return nil
}

func (d *Delivery) setEstimatedMinutes(estimatedMinutes int) error {
	if estimatedMinutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated minutes",
			fmt.Errorf("%d is negative", estimatedMinutes))
	}
	d.estimatedMinutes = estimatedMinutes
	return nil
}
