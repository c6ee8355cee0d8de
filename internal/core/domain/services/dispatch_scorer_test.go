package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

func readyOrder(t *testing.T, origin kernel.GeoPoint, coldChain bool) *order.Order {
	t.Helper()
	item, err := order.NewItem("groceries", 1, coldChain)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), order.DeliveryTypeHomeDelivery,
		origin, point(t, 48.87, 2.36), []order.Item{item}, 2500)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.StartPreparing())
	require.NoError(t, o.MarkReady(nil))
	return o
}

func driverAt(t *testing.T, location kernel.GeoPoint, active int, coldBox bool) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.NewUUID(), "d", driver.VehicleTypeScooter,
		coldBox, location, true, active, driver.DefaultMaxActiveOrders, 1)
	require.NoError(t, err)
	return d
}

func TestDispatchScorerScore(t *testing.T) {
	s := NewDispatchScorer()
	origin := point(t, 0, 0)
	o := readyOrder(t, origin, false)

	t.Run("idle driver at the pickup point scores 100", func(t *testing.T) {
		d := driverAt(t, origin, 0, false)
		assert.InDelta(t, 100.0, s.Score(d, o), 0.001)
	})

	t.Run("distance and load both cost points", func(t *testing.T) {
		// About 11.1 km away: proximity 0, load 100.
		far := driverAt(t, point(t, 0, 0.1), 0, false)
		assert.InDelta(t, 40.0, s.Score(far, o), 0.5)

		// At the pickup with two active orders: proximity 100, load 40.
		busy := driverAt(t, origin, 2, false)
		assert.InDelta(t, 76.0, s.Score(busy, o), 0.001)
	})

	t.Run("components never go negative", func(t *testing.T) {
		// About 111 km away would be -1010 proximity without the clamp.
		veryFar := driverAt(t, point(t, 1, 0), 3, false)
		assert.GreaterOrEqual(t, s.Score(veryFar, o), 0.0)
	})
}

func TestDispatchScorerRank(t *testing.T) {
	s := NewDispatchScorer()
	origin := point(t, 0, 0)
	o := readyOrder(t, origin, true)

	t.Run("orders candidates best first and skips ineligible drivers", func(t *testing.T) {
		near := driverAt(t, origin, 0, true)
		far := driverAt(t, point(t, 0, 0.05), 0, false)

		offShift := driverAt(t, origin, 0, true)
		require.NoError(t, offShift.SetAvailable(false))

		full := driverAt(t, origin, driver.DefaultMaxActiveOrders, true)

		ranked := s.Rank(o, []*driver.Driver{full, far, offShift, near})
		require.Len(t, ranked, 2)
		assert.True(t, ranked[0].Driver.IsEqual(near))
		assert.True(t, ranked[1].Driver.IsEqual(far))
	})

	t.Run("reports cold chain fitness without filtering", func(t *testing.T) {
		noColdBox := driverAt(t, origin, 0, false)

		ranked := s.Rank(o, []*driver.Driver{noColdBox})
		require.Len(t, ranked, 1)
		assert.False(t, ranked[0].ColdChainFit)
	})

	t.Run("equal scores break by load then id", func(t *testing.T) {
		relaxed := driverAt(t, origin, 0, false)
		// Same position, more load: lower score, so force the load tie with
		// two idle drivers and check the id ordering.
		other := driverAt(t, origin, 0, false)

		ranked := s.Rank(o, []*driver.Driver{relaxed, other})
		require.Len(t, ranked, 2)
		assert.Less(t, ranked[0].Driver.ID().String(), ranked[1].Driver.ID().String())
	})
}

func TestDispatchScorerBest(t *testing.T) {
	s := NewDispatchScorer()
	origin := point(t, 0, 0)
	o := readyOrder(t, origin, false)

	t.Run("returns the top candidate", func(t *testing.T) {
		near := driverAt(t, origin, 0, false)
		far := driverAt(t, point(t, 0, 0.05), 0, false)

		best, err := s.Best(o, []*driver.Driver{far, near})
		require.NoError(t, err)
		assert.True(t, best.Driver.IsEqual(near))
	})

	t.Run("fails when nobody is eligible", func(t *testing.T) {
		full := driverAt(t, origin, driver.DefaultMaxActiveOrders, false)

		_, err := s.Best(o, []*driver.Driver{full})
		assert.ErrorIs(t, err, ErrNoEligibleDriver)
	})
}
