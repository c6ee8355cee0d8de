package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

func testLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	return p
}

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := NewDriver(kernel.NewUUID(), "Jules", VehicleTypeScooter, true, testLocation(t), DefaultMaxActiveOrders)
	require.NoError(t, err)
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("creates an available driver with no active orders", func(t *testing.T) {
		id := kernel.NewUUID()
		d, err := NewDriver(id, "Jules", VehicleTypeBike, false, testLocation(t), 3)
		require.NoError(t, err)

		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Jules", d.Name())
		assert.True(t, d.IsAvailable())
		assert.False(t, d.HasColdBox())
		assert.Equal(t, 0, d.ActiveOrders())
		assert.Equal(t, 3, d.MaxActiveOrders())
		assert.Equal(t, 3, d.RemainingCapacity())
		assert.NoError(t, d.Validate())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewDriver(kernel.NewUUID(), "", VehicleTypeBike, false, testLocation(t), 3)
		assert.Error(t, err)
	})

	t.Run("rejects unknown vehicle type", func(t *testing.T) {
		_, err := NewDriver(kernel.NewUUID(), "Jules", VehicleTypeUnknown, false, testLocation(t), 3)
		assert.Error(t, err)
	})

	t.Run("rejects non positive max active orders", func(t *testing.T) {
		_, err := NewDriver(kernel.NewUUID(), "Jules", VehicleTypeBike, false, testLocation(t), 0)
		assert.Error(t, err)
	})

	t.Run("zero value driver fails validation", func(t *testing.T) {
		var d Driver
		assert.ErrorIs(t, d.Validate(), ErrDriverIsNotConstructed)
	})
}

func TestDriverTakeOrder(t *testing.T) {
	t.Run("increments the active order count up to the cap", func(t *testing.T) {
		d := newTestDriver(t)

		for i := 1; i <= d.MaxActiveOrders(); i++ {
			require.True(t, d.CanTakeOrder())
			require.NoError(t, d.TakeOrder())
			assert.Equal(t, i, d.ActiveOrders())
		}

		assert.False(t, d.CanTakeOrder())
		assert.ErrorIs(t, d.TakeOrder(), ErrDriverAtCapacity)
		assert.Equal(t, d.MaxActiveOrders(), d.ActiveOrders())
	})

	t.Run("fails for an unavailable driver", func(t *testing.T) {
		d := newTestDriver(t)
		require.NoError(t, d.SetAvailable(false))

		assert.False(t, d.CanTakeOrder())
		assert.ErrorIs(t, d.TakeOrder(), ErrDriverUnavailable)
	})
}

func TestDriverCompleteOrder(t *testing.T) {
	t.Run("decrements the active order count", func(t *testing.T) {
		d := newTestDriver(t)
		require.NoError(t, d.TakeOrder())
		require.NoError(t, d.TakeOrder())

		require.NoError(t, d.CompleteOrder())
		assert.Equal(t, 1, d.ActiveOrders())
		assert.Equal(t, d.MaxActiveOrders()-1, d.RemainingCapacity())
	})

	t.Run("fails when the driver has no active orders", func(t *testing.T) {
		d := newTestDriver(t)
		assert.ErrorIs(t, d.CompleteOrder(), ErrNoActiveOrders)
		assert.Equal(t, 0, d.ActiveOrders())
	})
}

func TestDriverSetters(t *testing.T) {
	t.Run("updates the reported location", func(t *testing.T) {
		d := newTestDriver(t)
		next, err := kernel.NewGeoPoint(48.86, 2.36)
		require.NoError(t, err)

		require.NoError(t, d.SetLocation(next))
		assert.True(t, d.Location().IsEqual(next))
	})

	t.Run("toggling availability keeps active orders", func(t *testing.T) {
		d := newTestDriver(t)
		require.NoError(t, d.TakeOrder())

		require.NoError(t, d.SetAvailable(false))
		assert.False(t, d.IsAvailable())
		assert.Equal(t, 1, d.ActiveOrders())

		require.NoError(t, d.SetAvailable(true))
		assert.True(t, d.IsAvailable())
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("restores availability, active orders and version", func(t *testing.T) {
		d, err := RestoreDriver(kernel.NewUUID(), "Jules", VehicleTypeVan, true, testLocation(t), false, 2, 3, 7)
		require.NoError(t, err)

		assert.False(t, d.IsAvailable())
		assert.Equal(t, 2, d.ActiveOrders())
		assert.True(t, d.HasColdBox())
		assert.Equal(t, 7, d.Version())
	})

	t.Run("rejects active orders outside the cap", func(t *testing.T) {
		_, err := RestoreDriver(kernel.NewUUID(), "Jules", VehicleTypeVan, false, testLocation(t), true, 4, 3, 1)
		assert.Error(t, err)

		_, err = RestoreDriver(kernel.NewUUID(), "Jules", VehicleTypeVan, false, testLocation(t), true, -1, 3, 1)
		assert.Error(t, err)
	})

	t.Run("rejects a negative version", func(t *testing.T) {
		_, err := RestoreDriver(kernel.NewUUID(), "Jules", VehicleTypeVan, false, testLocation(t), true, 0, 3, -1)
		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestVehicleTypeFromString(t *testing.T) {
	for _, s := range []string{"bike", "scooter", "car", "van"} {
		vt, err := VehicleTypeFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, vt.String())
		assert.NoError(t, vt.Validate())
	}

	_, err := VehicleTypeFromString("hoverboard")
	assert.Error(t, err)
}
