package relaypoint

import (
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// NearSaturatedThreshold is the saturation ratio above which a slot pool
// is reported as near capacity.
const NearSaturatedThreshold = 0.75

var (
	// ErrRelayPointIsNotConstructed is returned when a RelayPoint was not
	// created through NewRelayPoint or RestoreRelayPoint.
	ErrRelayPointIsNotConstructed = errors.New(
		"RelayPoint must be created via NewRelayPoint constructor")

	// ErrStorageTypeNotOffered indicates the relay point has no slot pool
	// for the requested storage type.
	ErrStorageTypeNotOffered = errors.New("relay point does not offer this storage type")
)

// RelayPoint is the aggregate root for a pickup relay. It owns the slot
// pools for each storage type it offers and the weekly opening schedule;
// every capacity mutation goes through Reserve and Release so the pool
// bounds hold inside one transaction.
type RelayPoint struct {
	// id is the unique identifier for the relay point
	id kernel.UUID

	// name is the relay point's display name
	name string

	// location is the relay point's position
	location kernel.GeoPoint

	// schedule is the weekly opening schedule
	schedule Schedule

	// capacities holds one slot pool per offered storage type
	capacities map[StorageType]StorageCapacity

	// version supports optimistic locking in the persistence adapter
	version int

	// isConstructed ensures the relay point was created via a constructor
	isConstructed bool
}

// NewRelayPoint creates a relay point with empty slot pools. At least one
// capacity is required; duplicate storage types are rejected.
func NewRelayPoint(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	schedule Schedule,
	capacities []StorageCapacity,
) (*RelayPoint, error) {
	rp := &RelayPoint{
		isConstructed: true,
	}

	if err := errors.Join(
		rp.setID(id),
		rp.setName(name),
		rp.setLocation(location),
		rp.setSchedule(schedule),
		rp.setCapacities(capacities),
	); err != nil {
		return nil, err
	}

	return rp, nil
}

// RestoreRelayPoint reconstructs a relay point from persistence. The
// capacities carry their used counts and version the optimistic-lock
// counter.
func RestoreRelayPoint(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	schedule Schedule,
	capacities []StorageCapacity,
	version int,
) (*RelayPoint, error) {
	rp, err := NewRelayPoint(id, name, location, schedule, capacities)
	if err != nil {
		return nil, err
	}
	if err := rp.setVersion(version); err != nil {
		return nil, err
	}
	return rp, nil
}

// Validate ensures the RelayPoint was properly constructed.
func (rp *RelayPoint) Validate() error {
	if rp == nil || !rp.isConstructed {
		return ErrRelayPointIsNotConstructed
	}
	return nil
}

// IsEqual compares two relay points by identity.
func (rp *RelayPoint) IsEqual(other *RelayPoint) bool {
	return other != nil && rp.id.IsEqual(other.id)
}

// ID returns the relay point's unique identifier.
func (rp *RelayPoint) ID() kernel.UUID {
	return rp.id
}

// Name returns the relay point's display name.
func (rp *RelayPoint) Name() string {
	return rp.name
}

// Location returns the relay point's position.
func (rp *RelayPoint) Location() kernel.GeoPoint {
	return rp.location
}

// Schedule returns the weekly opening schedule.
func (rp *RelayPoint) Schedule() Schedule {
	return rp.schedule
}

// Version returns the optimistic-lock version loaded from persistence.
func (rp *RelayPoint) Version() int {
	return rp.version
}

// Capacities returns a copy of the slot pools.
func (rp *RelayPoint) Capacities() []StorageCapacity {
	copied := make([]StorageCapacity, 0, len(rp.capacities))
	for _, st := range []StorageType{StorageTypeAmbient, StorageTypeCold, StorageTypeFrozen} {
		if c, ok := rp.capacities[st]; ok {
			copied = append(copied, c)
		}
	}
	return copied
}

// Capacity returns the slot pool for the given storage type.
func (rp *RelayPoint) Capacity(storageType StorageType) (StorageCapacity, error) {
	c, ok := rp.capacities[storageType]
	if !ok {
		return StorageCapacity{}, fmt.Errorf("%w: %s", ErrStorageTypeNotOffered, storageType)
	}
	return c, nil
}

// IsOpenAt reports whether the relay point is open at the given instant.
func (rp *RelayPoint) IsOpenAt(t time.Time) bool {
	return rp.schedule.IsOpenAt(t)
}

// HasCapacityFor reports whether a free slot of the given storage type
// exists right now.
func (rp *RelayPoint) HasCapacityFor(storageType StorageType) bool {
	c, ok := rp.capacities[storageType]
	return ok && c.Free() > 0
}

// Saturation returns used/total for the given storage type, or an error
// when the type is not offered.
func (rp *RelayPoint) Saturation(storageType StorageType) (float64, error) {
	c, err := rp.Capacity(storageType)
	if err != nil {
		return 0, err
	}
	return c.Saturation(), nil
}

// OverallSaturation returns used/total aggregated across every offered
// slot pool.
func (rp *RelayPoint) OverallSaturation() float64 {
	var used, total int
	for _, c := range rp.capacities {
		used += c.Used()
		total += c.Total()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total)
}

// IsNearSaturated reports whether any offered slot pool is at or above
// NearSaturatedThreshold.
func (rp *RelayPoint) IsNearSaturated() bool {
	for _, c := range rp.capacities {
		if c.Saturation() >= NearSaturatedThreshold {
			return true
		}
	}
	return false
}

// Reserve takes one slot of the given storage type. Fails with
// ErrStorageTypeNotOffered or ErrCapacityExceeded; a failed reservation
// leaves the pool untouched.
func (rp *RelayPoint) Reserve(storageType StorageType) error {
	if err := rp.Validate(); err != nil {
		return err
	}

	c, ok := rp.capacities[storageType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrStorageTypeNotOffered, storageType)
	}
	if err := c.Reserve(); err != nil {
		return err
	}

	rp.capacities[storageType] = c
	return nil
}

// Release frees one slot of the given storage type. Fails with
// ErrStorageTypeNotOffered or ErrCapacityUnderflow.
func (rp *RelayPoint) Release(storageType StorageType) error {
	if err := rp.Validate(); err != nil {
		return err
	}

	c, ok := rp.capacities[storageType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrStorageTypeNotOffered, storageType)
	}
	if err := c.Release(); err != nil {
		return err
	}

	rp.capacities[storageType] = c
	return nil
}

func (rp *RelayPoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rp.id = id
	return nil
}

func (rp *RelayPoint) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("relay point name")
	}
	rp.name = name
	return nil
}

func (rp *RelayPoint) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	rp.location = location
	return nil
}

func (rp *RelayPoint) setSchedule(schedule Schedule) error {
	if len(schedule.windows) == 0 {
		return errs.NewValueIsRequiredError("schedule")
	}
	rp.schedule = schedule
	return nil
}

func (rp *RelayPoint) setCapacities(capacities []StorageCapacity) error {
	if len(capacities) == 0 {
		return errs.NewValueIsRequiredError("capacities")
	}

	byType := make(map[StorageType]StorageCapacity, len(capacities))
	for i := range capacities {
		c := capacities[i]
		if err := c.Validate(); err != nil {
			return err
		}
		if _, ok := byType[c.StorageType()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("capacities",
				fmt.Errorf("duplicate storage type %s", c.StorageType()))
		}
		byType[c.StorageType()] = c
	}

	rp.capacities = byType
	return nil
}

func (rp *RelayPoint) setVersion(version int) error {
	if version < 0 {
		return errs.NewVersionIsInvalidErrorWithCause("relay point version",
			fmt.Errorf("%d is negative", version))
	}
	rp.version = version
	return nil
}
