package services

import (
	"errors"
	"sort"

	"lastmile/internal/core/domain/model/driver"
	"lastmile/internal/core/domain/model/order"
)

// ErrNoEligibleDriver is returned when no available driver with remaining
// capacity exists for an order. The order stays ready and is retried on
// the next dispatch run.
var ErrNoEligibleDriver = errors.New("no eligible driver")

const (
	distanceWeight = 0.6
	loadWeight     = 0.4

	distancePenaltyPerKm = 10.0
	loadPenaltyPerOrder  = 30.0
	maxComponentScore    = 100.0
)

// RankedDriver is one scored candidate for an order.
type RankedDriver struct {
	// Driver is the candidate.
	Driver *driver.Driver

	// Score is the candidate's fitness, higher is better.
	Score float64

	// ColdChainFit is false when the order needs cold-chain transport and
	// the driver has no cold box. Assignment still proceeds; the mismatch
	// is reported so a warning can be emitted.
	ColdChainFit bool
}

// DispatchScorer is a domain service scoring drivers against an order.
//
// The score blends two components, each clamped to [0, 100]:
//   - proximity: 100 minus 10 per km between the driver and the pickup
//   - load: 100 minus 30 per active order
//
// weighted 60/40 in favor of proximity. Identical inputs always produce
// identical rankings: ties break by lowest active count, then driver id.
type DispatchScorer struct{}

// NewDispatchScorer creates a new DispatchScorer instance.
func NewDispatchScorer() DispatchScorer {
	return DispatchScorer{}
}

// Score computes the fitness of one driver for one order.
func (DispatchScorer) Score(d *driver.Driver, o *order.Order) float64 {
	distKm := d.Location().DistanceKm(o.Origin())

	proximity := maxComponentScore - distKm*distancePenaltyPerKm
	if proximity < 0 {
		proximity = 0
	}

	load := maxComponentScore - float64(d.ActiveOrders())*loadPenaltyPerOrder
	if load < 0 {
		load = 0
	}

	return distanceWeight*proximity + loadWeight*load
}

// Rank scores every eligible driver for the order and returns them best
// first. Drivers that are off shift or at capacity are excluded.
func (s DispatchScorer) Rank(o *order.Order, drivers []*driver.Driver) []RankedDriver {
	ranked := make([]RankedDriver, 0, len(drivers))
	for _, d := range drivers {
		if !d.CanTakeOrder() {
			continue
		}
		ranked = append(ranked, RankedDriver{
			Driver:       d,
			Score:        s.Score(d, o),
			ColdChainFit: d.HasColdBox() || !o.RequiresColdChain(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Driver.ActiveOrders() != ranked[j].Driver.ActiveOrders() {
			return ranked[i].Driver.ActiveOrders() < ranked[j].Driver.ActiveOrders()
		}
		return ranked[i].Driver.ID().String() < ranked[j].Driver.ID().String()
	})

	return ranked
}

// Best returns the top-ranked eligible driver for the order, or
// ErrNoEligibleDriver when none qualifies.
func (s DispatchScorer) Best(o *order.Order, drivers []*driver.Driver) (RankedDriver, error) {
	ranked := s.Rank(o, drivers)
	if len(ranked) == 0 {
		return RankedDriver{}, ErrNoEligibleDriver
	}
	return ranked[0], nil
}
