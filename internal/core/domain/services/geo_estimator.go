package services

import (
	"fmt"
	"math"
	"time"

	"lastmile/internal/core/domain/model/kernel"
)

// TrafficCondition is the static traffic heuristic used for travel
// estimates. It is derived from the clock alone; no external traffic
// provider is consulted.
type TrafficCondition int

const (
	// TrafficLow is free-flowing traffic.
	TrafficLow TrafficCondition = iota

	// TrafficModerate is shoulder-hour traffic around the peaks.
	TrafficModerate

	// TrafficHeavy is weekday rush-hour traffic.
	TrafficHeavy
)

// String returns the lowercase name of the traffic condition.
// Implements fmt.Stringer.
func (c TrafficCondition) String() string {
	switch c {
	case TrafficModerate:
		return "moderate"
	case TrafficHeavy:
		return "heavy"
	default:
		return "low"
	}
}

const (
	// baseSpeedKmh is the assumed urban driving speed in free-flowing
	// traffic.
	baseSpeedKmh = 30.0

	// PreparationBufferMinutes is the fixed vendor handover buffer added
	// to every pickup estimate.
	PreparationBufferMinutes = 10
)

// speedFactor scales baseSpeedKmh down under traffic.
func (c TrafficCondition) speedFactor() float64 {
	switch c {
	case TrafficModerate:
		return 0.75
	case TrafficHeavy:
		return 0.5
	default:
		return 1.0
	}
}

// NavigationLinks are the driver-facing navigation deep links for one
// destination.
type NavigationLinks struct {
	// Primary opens turn-by-turn navigation directly.
	Primary string

	// Fallback is a plain directions link for clients without the
	// navigation app.
	Fallback string

	// ShareMessage is a short text combining both links, ready to forward.
	ShareMessage string
}

// GeoEstimator is a domain service producing travel-time estimates and
// navigation links from coordinates and the clock. It is pure and never
// returns an error: invalid inputs are excluded upstream by GeoPoint
// construction.
type GeoEstimator struct{}

// NewGeoEstimator creates a new GeoEstimator instance.
func NewGeoEstimator() GeoEstimator {
	return GeoEstimator{}
}

// TrafficConditionAt returns the traffic heuristic for the given instant.
// Weekday 07:00-09:00 and 17:00-19:00 are heavy; the hour on each side of
// a peak is moderate; everything else, weekends included, is low.
func (GeoEstimator) TrafficConditionAt(t time.Time) TrafficCondition {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return TrafficLow
	}

	hour := t.Hour()
	switch {
	case hour >= 7 && hour < 9, hour >= 17 && hour < 19:
		return TrafficHeavy
	case hour == 6, hour == 9, hour == 16, hour == 19:
		return TrafficModerate
	default:
		return TrafficLow
	}
}

// EstimateTravelMinutes estimates driving time between two points under
// the given traffic condition, rounded up to whole minutes.
func (GeoEstimator) EstimateTravelMinutes(from, to kernel.GeoPoint, condition TrafficCondition) int {
	distKm := from.DistanceKm(to)
	hours := distKm / (baseSpeedKmh * condition.speedFactor())
	return int(math.Ceil(hours * 60))
}

// EstimatePickupMinutes estimates time until the driver leaves the vendor
// with the order: travel to the pickup point plus the fixed preparation
// buffer. A zero-distance pickup still costs the buffer.
func (e GeoEstimator) EstimatePickupMinutes(from, pickup kernel.GeoPoint, condition TrafficCondition) int {
	return e.EstimateTravelMinutes(from, pickup, condition) + PreparationBufferMinutes
}

// BuildNavigationLinks produces the navigation deep links from the
// driver's position to the destination.
func (GeoEstimator) BuildNavigationLinks(from, to kernel.GeoPoint) NavigationLinks {
	primary := fmt.Sprintf("https://waze.com/ul?ll=%.6f,%.6f&navigate=yes",
		to.Latitude(), to.Longitude())
	fallback := fmt.Sprintf("https://www.google.com/maps/dir/%.6f,%.6f/%.6f,%.6f",
		from.Latitude(), from.Longitude(), to.Latitude(), to.Longitude())

	return NavigationLinks{
		Primary:      primary,
		Fallback:     fallback,
		ShareMessage: fmt.Sprintf("Navigate: %s (no app: %s)", primary, fallback),
	}
}
