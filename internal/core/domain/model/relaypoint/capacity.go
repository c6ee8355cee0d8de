package relaypoint

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	// ErrStorageCapacityIsNotConstructed is returned when a StorageCapacity
	// was not created through NewStorageCapacity or RestoreStorageCapacity.
	ErrStorageCapacityIsNotConstructed = errors.New(
		"StorageCapacity must be created via NewStorageCapacity constructor")

	// ErrCapacityExceeded indicates a reservation was attempted against a
	// full slot pool. The reservation is rejected, never truncated.
	ErrCapacityExceeded = errors.New("storage capacity exceeded")

	// ErrCapacityUnderflow indicates a release was recorded against a slot
	// pool with nothing reserved. This is a logic error to investigate,
	// never silently clamped to zero.
	ErrCapacityUnderflow = errors.New("storage capacity underflow")
)

// StorageCapacity is a bounded slot pool for one storage type at a relay
// point. The invariant 0 <= used <= total holds at all times; Reserve and
// Release fail rather than bend the bounds.
type StorageCapacity struct {
	storageType StorageType
	total       int
	used        int

	guard guard.ConstructorGuard
}

// NewStorageCapacity creates an empty slot pool. total must be positive.
func NewStorageCapacity(storageType StorageType, total int) (StorageCapacity, error) {
	c := StorageCapacity{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setStorageType(storageType),
		c.setTotal(total),
	); err != nil {
		return StorageCapacity{}, err
	}

	return c, nil
}

// RestoreStorageCapacity reconstructs a slot pool from persistence,
// including the used count.
func RestoreStorageCapacity(storageType StorageType, total int, used int) (StorageCapacity, error) {
	c, err := NewStorageCapacity(storageType, total)
	if err != nil {
		return StorageCapacity{}, err
	}

	if used < 0 || used > total {
		return StorageCapacity{}, errs.NewValueIsOutOfRangeError("used slots", used, 0, total)
	}
	c.used = used

	return c, nil
}

// Validate ensures the StorageCapacity was properly constructed.
func (c *StorageCapacity) Validate() error {
	return c.guard.Validate(ErrStorageCapacityIsNotConstructed)
}

// StorageType returns the temperature regime of this slot pool.
func (c StorageCapacity) StorageType() StorageType {
	return c.storageType
}

// Total returns the number of slots in the pool.
func (c StorageCapacity) Total() int {
	return c.total
}

// Used returns the number of reserved slots.
func (c StorageCapacity) Used() int {
	return c.used
}

// Free returns the number of unreserved slots.
func (c StorageCapacity) Free() int {
	return c.total - c.used
}

// Saturation returns used/total in [0, 1].
func (c StorageCapacity) Saturation() float64 {
	return float64(c.used) / float64(c.total)
}

// Reserve takes one slot. Fails with ErrCapacityExceeded when the pool is
// full.
func (c *StorageCapacity) Reserve() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.used >= c.total {
		return fmt.Errorf("%w: %s pool is full (%d/%d)", ErrCapacityExceeded,
			c.storageType, c.used, c.total)
	}

	c.used++
	return nil
}

// Release frees one slot. Fails with ErrCapacityUnderflow when no slot is
// reserved.
func (c *StorageCapacity) Release() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.used == 0 {
		return fmt.Errorf("%w: %s pool has no reserved slots", ErrCapacityUnderflow,
			c.storageType)
	}

	c.used--
	return nil
}

func (c *StorageCapacity) setStorageType(storageType StorageType) error {
	if err := storageType.Validate(); err != nil {
		return err
	}
	c.storageType = storageType
	return nil
}

func (c *StorageCapacity) setTotal(total int) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total slots",
			fmt.Errorf("%d is not greater than 0", total))
	}
	c.total = total
	return nil
}
