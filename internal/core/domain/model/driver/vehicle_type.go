package driver

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// VehicleType classifies how a driver moves around. It is carried for
// operational visibility; dispatch scoring does not discriminate on it.
type VehicleType int

const (
	// VehicleTypeUnknown represents an invalid or undefined vehicle type.
	VehicleTypeUnknown VehicleType = iota

	// VehicleTypeBike is a bicycle.
	VehicleTypeBike

	// VehicleTypeScooter is a motor scooter or motorbike.
	VehicleTypeScooter

	// VehicleTypeCar is a passenger car.
	VehicleTypeCar

	// VehicleTypeVan is a light utility vehicle.
	VehicleTypeVan
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleTypeUnknown: "unknown",
		VehicleTypeBike:    "bike",
		VehicleTypeScooter: "scooter",
		VehicleTypeCar:     "car",
		VehicleTypeVan:     "van",
	}
}

// VehicleTypeFromString parses the persisted snake_case representation.
func VehicleTypeFromString(s string) (VehicleType, error) {
	for vt, str := range getVehicleTypeStrings() {
		if str == s && vt != VehicleTypeUnknown {
			return vt, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle type",
		fmt.Errorf("%q is not a valid vehicle type", s))
}

// Validate checks that the VehicleType value is one of the defined kinds.
func (v VehicleType) Validate() error {
	if v == VehicleTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	if _, ok := getVehicleTypeStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

// String returns the snake_case name of the vehicle type.
// Implements fmt.Stringer.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "unknown"
}
