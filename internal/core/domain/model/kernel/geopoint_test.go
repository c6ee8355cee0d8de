package kernel_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates point with valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(14.6415, -61.0242)

		require.NoError(t, err)
		assert.InDelta(t, 14.6415, p.Latitude(), 1e-9)
		assert.InDelta(t, -61.0242, p.Longitude(), 1e-9)
		require.NoError(t, p.Validate())
	})

	t.Run("accepts boundary coordinates", func(t *testing.T) {
		corners := [][2]float64{
			{kernel.MinLatitude, kernel.MinLongitude},
			{kernel.MinLatitude, kernel.MaxLongitude},
			{kernel.MaxLatitude, kernel.MinLongitude},
			{kernel.MaxLatitude, kernel.MaxLongitude},
			{0, 0},
		}

		for _, c := range corners {
			_, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
		}
	})

	t.Run("rejects out-of-range latitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.0001, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("rejects out-of-range longitude", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("joins both violations", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(100, 200)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates compare equal", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(14.6415, -61.0242)
		b, _ := kernel.NewGeoPoint(14.6415, -61.0242)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different coordinates compare unequal", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(14.6415, -61.0242)
		b, _ := kernel.NewGeoPoint(14.6037, -61.0731)

		assert.False(t, a.IsEqual(b))
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(14.6415, -61.0242)

		assert.InDelta(t, 0, p.DistanceKm(p), 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(14.6415, -61.0242)
		b, _ := kernel.NewGeoPoint(14.6037, -61.0731)

		assert.InDelta(t, a.DistanceKm(b), b.DistanceKm(a), 1e-9)
	})

	t.Run("matches known great-circle distance", func(t *testing.T) {
		// Paris to London is roughly 344 km.
		paris, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		london, _ := kernel.NewGeoPoint(51.5074, -0.1278)

		assert.InDelta(t, 344, paris.DistanceKm(london), 2)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(14, -61)
		b, _ := kernel.NewGeoPoint(15, -61)

		assert.InDelta(t, 111.2, a.DistanceKm(b), 0.5)
	})
}

func TestGeoPoint_String(t *testing.T) {
	p, _ := kernel.NewGeoPoint(14.6415, -61.0242)

	assert.Equal(t, "GeoPoint(14.641500,-61.024200)", p.String())
}
