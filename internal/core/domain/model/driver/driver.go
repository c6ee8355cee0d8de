package driver

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// DefaultMaxActiveOrders is the per-driver concurrent order cap used when
// no explicit configuration is supplied.
const DefaultMaxActiveOrders = 3

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not
	// created through NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrDriverAtCapacity indicates the driver already carries the maximum
	// number of active orders and cannot take another.
	ErrDriverAtCapacity = errors.New("driver has no remaining order capacity")

	// ErrDriverUnavailable indicates the driver is currently off shift.
	ErrDriverUnavailable = errors.New("driver is not available")

	// ErrNoActiveOrders indicates a completion was recorded for a driver
	// with no active orders. This is a logic error to investigate, never
	// silently absorbed.
	ErrNoActiveOrders = errors.New("driver has no active orders to complete")
)

// Driver is the aggregate root for a courier. Mutation happens only
// through the aggregate's methods; the dispatch engine drives TakeOrder
// and CompleteOrder during assignment and delivery.
type Driver struct {
	// id is the unique identifier for the driver
	id kernel.UUID

	// name is the driver's display name
	name string

	// location is the last reported GPS position
	location kernel.GeoPoint

	// available marks the driver as on shift and accepting orders
	available bool

	// vehicleType is the driver's vehicle
	vehicleType VehicleType

	// hasColdBox marks the vehicle as equipped for cold-chain transport
	hasColdBox bool

	// activeOrders counts orders currently assigned and not yet closed
	activeOrders int

	// maxActiveOrders caps activeOrders; the invariant of this aggregate
	maxActiveOrders int

	// version supports optimistic locking in the persistence adapter
	version int

	// isConstructed ensures the driver was created via a constructor
	isConstructed bool
}

// NewDriver creates an available driver with no active orders.
// maxActiveOrders must be positive; pass DefaultMaxActiveOrders unless the
// deployment configures a different cap.
func NewDriver(
	id kernel.UUID,
	name string,
	vehicleType VehicleType,
	hasColdBox bool,
	location kernel.GeoPoint,
	maxActiveOrders int,
) (*Driver, error) {
	d := &Driver{
		available:     true,
		hasColdBox:    hasColdBox,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehicleType(vehicleType),
		d.setLocation(location),
		d.setMaxActiveOrders(maxActiveOrders),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence, including
// availability, the active-order count and the optimistic-lock version.
func RestoreDriver(
	id kernel.UUID,
	name string,
	vehicleType VehicleType,
	hasColdBox bool,
	location kernel.GeoPoint,
	available bool,
	activeOrders int,
	maxActiveOrders int,
	version int,
) (*Driver, error) {
	d := &Driver{
		available:     available,
		hasColdBox:    hasColdBox,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehicleType(vehicleType),
		d.setLocation(location),
		d.setMaxActiveOrders(maxActiveOrders),
		d.setVersion(version),
	); err != nil {
		return nil, err
	}

	if activeOrders < 0 || activeOrders > d.maxActiveOrders {
		return nil, errs.NewValueIsOutOfRangeError("active orders", activeOrders, 0, d.maxActiveOrders)
	}
	d.activeOrders = activeOrders

	return d, nil
}

// Validate ensures the Driver was properly constructed.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// IsEqual compares two drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Location returns the last reported GPS position.
func (d *Driver) Location() kernel.GeoPoint {
	return d.location
}

// IsAvailable reports whether the driver is on shift.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// VehicleType returns the driver's vehicle kind.
func (d *Driver) VehicleType() VehicleType {
	return d.vehicleType
}

// HasColdBox reports whether the vehicle can carry cold-chain items.
func (d *Driver) HasColdBox() bool {
	return d.hasColdBox
}

// ActiveOrders returns the count of currently assigned, unclosed orders.
func (d *Driver) ActiveOrders() int {
	return d.activeOrders
}

// MaxActiveOrders returns the concurrent order cap.
func (d *Driver) MaxActiveOrders() int {
	return d.maxActiveOrders
}

// Version returns the optimistic-lock version loaded from persistence.
func (d *Driver) Version() int {
	return d.version
}

// RemainingCapacity returns how many more orders the driver can take.
func (d *Driver) RemainingCapacity() int {
	return d.maxActiveOrders - d.activeOrders
}

// CanTakeOrder reports whether the driver is available with capacity to
// spare. This is the eligibility filter used by the dispatch engine.
func (d *Driver) CanTakeOrder() bool {
	return d.available && d.activeOrders < d.maxActiveOrders
}

// TakeOrder increments the active-order count. Fails with
// ErrDriverUnavailable for off-shift drivers and ErrDriverAtCapacity when
// the cap is reached; the count never exceeds maxActiveOrders.
func (d *Driver) TakeOrder() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.available {
		return ErrDriverUnavailable
	}
	if d.activeOrders >= d.maxActiveOrders {
		return ErrDriverAtCapacity
	}

	d.activeOrders++
	return nil
}

// CompleteOrder decrements the active-order count when an order the driver
// carried reaches a terminal or relay-handoff state. A completion with no
// active orders is a logic error (ErrNoActiveOrders), never clamped.
func (d *Driver) CompleteOrder() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.activeOrders == 0 {
		return ErrNoActiveOrders
	}

	d.activeOrders--
	return nil
}

// SetLocation updates the driver's reported GPS position.
func (d *Driver) SetLocation(location kernel.GeoPoint) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return d.setLocation(location)
}

// SetAvailable toggles the driver's on-shift flag. Going unavailable does
// not shed active orders; it only stops new assignments.
func (d *Driver) SetAvailable(available bool) error {
	if err := d.Validate(); err != nil {
		return err
	}
	d.available = available
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}

func (d *Driver) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	d.vehicleType = vehicleType
	return nil
}

func (d *Driver) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

func (d *Driver) setMaxActiveOrders(maxActiveOrders int) error {
	if maxActiveOrders <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max active orders",
			fmt.Errorf("%d is not greater than 0", maxActiveOrders))
	}
	d.maxActiveOrders = maxActiveOrders
	return nil
}

func (d *Driver) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("driver version",
			fmt.Errorf("%d is negative", version))
	}
	d.version = version
	return nil
}
