package order

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
)

// ErrInvalidTransition indicates that a requested status change does not
// follow an edge of the order lifecycle graph for the order's delivery
// type. Such requests are rejected permanently and must not be retried.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with per-delivery-type transitions so orders can only move along
// the documented workflow.
//
// Lifecycle:
//
//	pending → confirmed → preparing → ready → assigned → picked_up → in_transit → delivered
//
// Relay deliveries branch after pickup and are completed by the customer's
// pickup confirmation at the relay point:
//
//	picked_up → at_relay → delivered
//	in_transit → at_relay → delivered
//
// Vendor-pickup orders skip the transport leg entirely (ready → delivered).
// cancelled is reachable from every non-terminal state; delivered and
// cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly created order.
	StatusPending

	// StatusConfirmed means the vendor accepted the order.
	StatusConfirmed

	// StatusPreparing means the vendor is preparing the line items.
	StatusPreparing

	// StatusReady means the order awaits dispatch (or customer collection
	// for vendor-pickup orders).
	StatusReady

	// StatusAssigned means a driver has been matched to the order.
	StatusAssigned

	// StatusPickedUp means the driver collected the order at the vendor.
	StatusPickedUp

	// StatusInTransit means the driver is en route to the destination.
	StatusInTransit

	// StatusAtRelay means the order was deposited at a relay point and
	// awaits customer collection. Only reachable for relay deliveries.
	StatusAtRelay

	// StatusDelivered is the successful terminal state.
	StatusDelivered

	// StatusCancelled is the unsuccessful terminal state, reachable from
	// any non-terminal status.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusConfirmed: "confirmed",
		StatusPreparing: "preparing",
		StatusReady:     "ready",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusAtRelay:   "at_relay",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// StatusFromString parses the persisted snake_case representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined lifecycle
// states. StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// successors returns the allowed next statuses from s for the given
// delivery type, excluding cancellation (handled in CanTransitionTo since
// it applies uniformly to every non-terminal state).
func (s Status) successors(deliveryType DeliveryType) []Status {
	switch s {
	case StatusPending:
		return []Status{StatusConfirmed}
	case StatusConfirmed:
		return []Status{StatusPreparing}
	case StatusPreparing:
		return []Status{StatusReady}
	case StatusReady:
		if deliveryType == DeliveryTypePickup {
			// Customer collects at the vendor, no transport leg.
			return []Status{StatusDelivered}
		}
		return []Status{StatusAssigned}
	case StatusAssigned:
		return []Status{StatusPickedUp}
	case StatusPickedUp:
		if deliveryType == DeliveryTypeRelayPoint {
			return []Status{StatusInTransit, StatusAtRelay}
		}
		return []Status{StatusInTransit}
	case StatusInTransit:
		if deliveryType == DeliveryTypeRelayPoint {
			return []Status{StatusAtRelay}
		}
		return []Status{StatusDelivered}
	case StatusAtRelay:
		return []Status{StatusDelivered}
	default:
		return nil
	}
}

// CanTransitionTo checks that target is an allowed successor of s for the
// given delivery type. Cancellation is allowed from every non-terminal
// state. Returns an error wrapping ErrInvalidTransition otherwise.
func (s Status) CanTransitionTo(target Status, deliveryType DeliveryType) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if target == StatusCancelled {
		if s.IsTerminal() {
			return fmt.Errorf("%w: %s order cannot be cancelled", ErrInvalidTransition, s)
		}
		return nil
	}

	for _, next := range s.successors(deliveryType) {
		if next == target {
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s is not allowed for %s delivery",
		ErrInvalidTransition, s, target, deliveryType)
}
