package services

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/relaypoint"
)

// MaxRelayDistanceKm bounds how far from the delivery point a suggested
// relay may be.
const MaxRelayDistanceKm = 5.0

// ErrNoRelayAvailable is returned when no relay point is open, in range
// and has a free slot of the required storage type.
var ErrNoRelayAvailable = errors.New("no relay point available")

// RelaySelector is a domain service choosing the relay point an order
// should be routed to. Candidates must be open at the given instant,
// within MaxRelayDistanceKm of the delivery point and have a free slot of
// the required storage type; among those the one with the lowest
// distance-and-saturation cost wins, ties by id.
type RelaySelector struct{}

// NewRelaySelector creates a new RelaySelector instance.
func NewRelaySelector() RelaySelector {
	return RelaySelector{}
}

// SuggestRelay returns the best relay point for a delivery destination,
// or ErrNoRelayAvailable when none qualifies.
func (RelaySelector) SuggestRelay(
	destination kernel.GeoPoint,
	required relaypoint.StorageType,
	candidates []*relaypoint.RelayPoint,
	at time.Time,
) (*relaypoint.RelayPoint, error) {
	var best *relaypoint.RelayPoint
	var bestCost float64

	for _, rp := range candidates {
		if !rp.IsOpenAt(at) || !rp.HasCapacityFor(required) {
			continue
		}

		distKm := rp.Location().DistanceKm(destination)
		if distKm > MaxRelayDistanceKm {
			continue
		}

		// Saturation is scored across every pool the relay offers, not just
		// the required one, so an otherwise crowded relay ranks lower.
		cost := distKm*20 + rp.OverallSaturation()*100

		if best == nil || cost < bestCost ||
			(cost == bestCost && rp.ID().String() < best.ID().String()) {
			best, bestCost = rp, cost
		}
	}

	if best == nil {
		return nil, ErrNoRelayAvailable
	}
	return best, nil
}
