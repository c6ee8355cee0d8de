package order

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRelayRequired is returned when a relay-point order reaches ready
	// without an assigned relay, or a non-relay order carries one. The
	// relay assignment is meaningful exactly for relay deliveries at ready
	// or later.
	ErrRelayRequired = errors.New("relay assignment is only valid for relay-point orders at ready or later")
)

// Order is the aggregate root of the dispatch core. It owns the canonical
// lifecycle of an order as it moves between vendor, driver, relay point and
// customer, and is the only place allowed to change an order's status.
//
// Invariants:
//   - Status only moves along the lifecycle graph for the order's delivery type
//   - relayID is non-nil if and only if the delivery type is relay_point and
//     the order has reached ready
//   - driverID is set exactly from assigned onwards (transport deliveries)
//   - every reached state has a timestamp
//   - at least one line item, total amount non-negative
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// deliveryType selects the lifecycle branch
	deliveryType DeliveryType

	// origin is the vendor location where drivers pick the order up
	origin kernel.GeoPoint

	// destination is the customer delivery point (for relay deliveries,
	// the point relay candidates are measured against)
	destination kernel.GeoPoint

	// items are the order lines
	items []Item

	// totalAmountCents is the monetary total in cents
	totalAmountCents int64

	// status is the current lifecycle state
	status Status

	// driverID is the assigned driver (nil until assigned)
	driverID *kernel.UUID

	// relayID is the assigned relay point (relay deliveries only)
	relayID *kernel.UUID

	// timestamps records when each reached status was entered
	timestamps map[Status]time.Time

	// version supports optimistic locking in the persistence adapter
	version int

	// events are the domain events recorded since the last drain
	events []kernel.DomainEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a pending order. The creation timestamp is stamped and
// all invariants are validated; this is the only way vendors introduce new
// orders into the core.
func NewOrder(
	id kernel.UUID,
	deliveryType DeliveryType,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
	items []Item,
	totalAmountCents int64,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		timestamps:    map[Status]time.Time{StatusPending: time.Now().UTC()},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryType(deliveryType),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setItems(items),
		o.setTotalAmountCents(totalAmountCents),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its
// status, assignments, timestamps and optimistic-lock version. The restored
// aggregate behaves identically to one that reached the same state through
// domain operations; no events are recorded.
func RestoreOrder(
	id kernel.UUID,
	deliveryType DeliveryType,
	origin kernel.GeoPoint,
	destination kernel.GeoPoint,
	items []Item,
	totalAmountCents int64,
	status Status,
	driverID *kernel.UUID,
	relayID *kernel.UUID,
	timestamps map[Status]time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		timestamps:    make(map[Status]time.Time, len(timestamps)),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryType(deliveryType),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setItems(items),
		o.setTotalAmountCents(totalAmountCents),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		id := *driverID
		o.driverID = &id
	}

	if relayID != nil {
		if err := relayID.Validate(); err != nil {
			return nil, err
		}
		id := *relayID
		o.relayID = &id
	}

	for s, ts := range timestamps {
		o.timestamps[s] = ts
	}

	if err := o.validateRelayConsistency(); err != nil {
		return nil, err
	}

	return o, nil
}

// validateRelayConsistency enforces the persisted-state invariant: the
// relay assignment exists exactly for relay-point orders that have reached
// ready (or later, including cancellation after ready).
func (o *Order) validateRelayConsistency() error {
	hasReachedReady := false
	if _, ok := o.timestamps[StatusReady]; ok {
		hasReachedReady = true
	}

	if o.relayID != nil && (o.deliveryType != DeliveryTypeRelayPoint || !hasReachedReady) {
		return ErrRelayRequired
	}
	if o.relayID == nil && o.deliveryType == DeliveryTypeRelayPoint && hasReachedReady {
		return ErrRelayRequired
	}
	return nil
}

// Validate ensures the Order was properly constructed. Call when receiving
// aggregates from outside the package boundary.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DeliveryType returns how the order reaches the customer.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// Origin returns the vendor pickup location.
func (o *Order) Origin() kernel.GeoPoint {
	return o.origin
}

// Destination returns the customer delivery point.
func (o *Order) Destination() kernel.GeoPoint {
	return o.destination
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmountCents returns the monetary total in cents.
func (o *Order) TotalAmountCents() int64 {
	return o.totalAmountCents
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver's ID, nil before assignment.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Relay returns the assigned relay point's ID, nil for non-relay orders
// and for relay orders before ready.
func (o *Order) Relay() *kernel.UUID {
	return o.relayID
}

// Version returns the optimistic-lock version loaded from persistence.
func (o *Order) Version() int {
	return o.version
}

// TimestampFor returns when the order entered the given status, if it did.
func (o *Order) TimestampFor(status Status) (time.Time, bool) {
	ts, ok := o.timestamps[status]
	return ts, ok
}

// Timestamps returns a copy of all recorded status timestamps.
func (o *Order) Timestamps() map[Status]time.Time {
	out := make(map[Status]time.Time, len(o.timestamps))
	for s, ts := range o.timestamps {
		out[s] = ts
	}
	return out
}

// RequiresColdChain reports whether any line item needs temperature
// control from pickup to delivery.
func (o *Order) RequiresColdChain() bool {
	for _, item := range o.items {
		if item.RequiresColdChain() {
			return true
		}
	}
	return false
}

// Events returns the domain events recorded since the last drain.
func (o *Order) Events() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// ClearEvents drains the recorded events. The unit of work calls this
// after publishing them post-commit.
func (o *Order) ClearEvents() {
	o.events = nil
}

// Confirm moves the order from pending to confirmed (vendor accepted).
func (o *Order) Confirm() error {
	return o.transitionTo(StatusConfirmed)
}

// StartPreparing moves the order from confirmed to preparing.
func (o *Order) StartPreparing() error {
	return o.transitionTo(StatusPreparing)
}

// MarkReady moves the order from preparing to ready. Relay-point orders
// must carry the relay assignment at this point and non-relay orders must
// not; violations fail with ErrRelayRequired before any state changes.
func (o *Order) MarkReady(relayID *kernel.UUID) error {
	if o.deliveryType == DeliveryTypeRelayPoint {
		if relayID == nil {
			return ErrRelayRequired
		}
		if err := relayID.Validate(); err != nil {
			return err
		}
	} else if relayID != nil {
		return ErrRelayRequired
	}

	if err := o.transitionTo(StatusReady); err != nil {
		return err
	}

	if relayID != nil {
		id := *relayID
		o.relayID = &id
	}
	return nil
}

// ValidateAssign checks, without side effects, that the order can be
// matched to a driver: it must be in ready status and of a delivery type
// with a transport leg.
func (o *Order) ValidateAssign() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.deliveryType.RequiresTransport() {
		return fmt.Errorf("%w: %s orders have no transport leg", ErrInvalidTransition, o.deliveryType)
	}
	return o.status.CanTransitionTo(StatusAssigned, o.deliveryType)
}

// Assign matches the order to a driver, moving it from ready to assigned.
// The driver's own capacity is checked by the caller (the dispatch engine)
// before invoking Assign.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssign(); err != nil {
		return err
	}

	if err := o.transitionTo(StatusAssigned); err != nil {
		return err
	}

	o.driverID = &driverID
	return nil
}

// RecordColdChainViolation records a warning that the assigned driver
// cannot keep the cold chain. Only meaningful once a driver is assigned.
func (o *Order) RecordColdChainViolation() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.driverID == nil {
		return errs.NewValueIsRequiredError("driver id")
	}

	o.events = append(o.events, ColdChainViolationEvent{
		OrderID:  o.id,
		DriverID: *o.driverID,
		At:       time.Now().UTC(),
	})
	return nil
}

// PickUp records the driver collecting the order at the vendor.
func (o *Order) PickUp() error {
	return o.transitionTo(StatusPickedUp)
}

// StartTransit records the driver leaving the vendor towards the
// destination.
func (o *Order) StartTransit() error {
	return o.transitionTo(StatusInTransit)
}

// DepositAtRelay records the driver dropping the order at its relay point.
// Only valid for relay deliveries; the capacity reservation at the relay is
// the application layer's responsibility and commits in the same unit of
// work as this transition.
func (o *Order) DepositAtRelay() error {
	if o.relayID == nil {
		return ErrRelayRequired
	}
	return o.transitionTo(StatusAtRelay)
}

// Deliver records the successful terminal state: handover at the door, or
// the customer's pickup confirmation for relay and vendor-pickup orders.
func (o *Order) Deliver() error {
	return o.transitionTo(StatusDelivered)
}

// Cancel aborts the order from any non-terminal state.
func (o *Order) Cancel() error {
	return o.transitionTo(StatusCancelled)
}

// transitionTo is the single funnel for all status changes: it validates
// the edge, stamps the timestamp and records the status-changed event.
func (o *Order) transitionTo(target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.status.CanTransitionTo(target, o.deliveryType); err != nil {
		return err
	}

	from := o.status
	now := time.Now().UTC()

	o.status = target
	o.timestamps[target] = now
	o.events = append(o.events, StatusChangedEvent{
		OrderID: o.id,
		From:    from,
		To:      target,
		At:      now,
	})

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	o.origin = origin
	return nil
}

func (o *Order) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotalAmountCents(totalAmountCents int64) error {
	if totalAmountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%d is negative", totalAmountCents))
	}
	o.totalAmountCents = totalAmountCents
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order version",
			fmt.Errorf("%d is negative", version))
	}
	o.version = version
	return nil
}
