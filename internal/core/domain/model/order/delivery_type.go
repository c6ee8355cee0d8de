package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// DeliveryType classifies how an order reaches the customer and therefore
// which branch of the lifecycle graph applies.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined delivery type.
	DeliveryTypeUnknown DeliveryType = iota

	// DeliveryTypeHomeDelivery is a door-to-door transport leg by a driver.
	DeliveryTypeHomeDelivery

	// DeliveryTypePickup means the customer collects the order at the
	// vendor; no driver is involved.
	DeliveryTypePickup

	// DeliveryTypeRelayPoint means a driver deposits the order at a relay
	// point where the customer later collects it.
	DeliveryTypeRelayPoint
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown:      "unknown",
		DeliveryTypeHomeDelivery: "home_delivery",
		DeliveryTypePickup:       "pickup",
		DeliveryTypeRelayPoint:   "relay_point",
	}
}

// DeliveryTypeFromString parses the persisted snake_case representation.
func DeliveryTypeFromString(s string) (DeliveryType, error) {
	for dt, str := range getDeliveryTypeStrings() {
		if str == s && dt != DeliveryTypeUnknown {
			return dt, nil
		}
	}
	return DeliveryTypeUnknown, errs.NewValueIsInvalidErrorWithCause("delivery type",
		fmt.Errorf("%q is not a valid delivery type", s))
}

// Validate checks that the DeliveryType value is one of the defined kinds.
func (d DeliveryType) Validate() error {
	if d == DeliveryTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%d is not a valid delivery type", d))
	}
	if _, ok := getDeliveryTypeStrings()[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

// RequiresTransport reports whether a driver leg exists for this type.
func (d DeliveryType) RequiresTransport() bool {
	return d == DeliveryTypeHomeDelivery || d == DeliveryTypeRelayPoint
}

// String returns the snake_case name of the delivery type.
// Implements fmt.Stringer.
func (d DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[d]; ok {
		return str
	}
	return "unknown"
}
