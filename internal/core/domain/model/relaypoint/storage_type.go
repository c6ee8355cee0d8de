package relaypoint

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// StorageType classifies a relay-point slot by temperature regime.
type StorageType int

const (
	// StorageTypeUnknown represents an invalid or undefined storage type.
	StorageTypeUnknown StorageType = iota

	// StorageTypeAmbient is room-temperature storage.
	StorageTypeAmbient

	// StorageTypeCold is refrigerated storage.
	StorageTypeCold

	// StorageTypeFrozen is freezer storage.
	StorageTypeFrozen
)

func getStorageTypeStrings() map[StorageType]string {
	return map[StorageType]string{
		StorageTypeUnknown: "unknown",
		StorageTypeAmbient: "ambient",
		StorageTypeCold:    "cold",
		StorageTypeFrozen:  "frozen",
	}
}

// StorageTypeFromString parses the persisted snake_case representation.
func StorageTypeFromString(s string) (StorageType, error) {
	for st, str := range getStorageTypeStrings() {
		if str == s && st != StorageTypeUnknown {
			return st, nil
		}
	}
	return StorageTypeUnknown, errs.NewValueIsInvalidErrorWithCause("storage type",
		fmt.Errorf("%q is not a valid storage type", s))
}

// Validate checks that the StorageType value is one of the defined kinds.
func (s StorageType) Validate() error {
	if s == StorageTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("storage type",
			fmt.Errorf("%d is not a valid storage type", s))
	}
	if _, ok := getStorageTypeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("storage type",
			fmt.Errorf("%d is not a valid storage type", s))
	}
	return nil
}

// String returns the snake_case name of the storage type.
// Implements fmt.Stringer.
func (s StorageType) String() string {
	if str, ok := getStorageTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}
