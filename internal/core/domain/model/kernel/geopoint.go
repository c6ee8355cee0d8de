package kernel

import (
	"errors"
	"fmt"
	"math"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude float64 = 90
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude float64 = 180

	// EarthRadiusKm is the mean Earth radius used for great-circle distances.
	EarthRadiusKm float64 = 6371
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair with validated bounds.
// The zero value is invalid and fails Validate; use NewGeoPoint.
//
// Example:
//
//	vendor, err := kernel.NewGeoPoint(14.6037, -61.0731)
//	if err != nil {
//	    // out-of-range coordinate
//	}
//	fmt.Println(vendor) // GeoPoint(14.603700,-61.073100)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must lie in [-90..90] and longitude in [-180..180]; violations
// are reported as out-of-range errors, joined when both are invalid.
func NewGeoPoint(lat float64, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(lat), p.setLongitude(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through its constructor.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lon
}

// String returns "GeoPoint(lat,lon)" with six decimal places.
// Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lon == other.lon
}

// DistanceKm computes the haversine great-circle distance to other in
// kilometers, using EarthRadiusKm.
//
// Example:
//
//	fortDeFrance, _ := kernel.NewGeoPoint(14.6037, -61.0731)
//	leLamentin, _ := kernel.NewGeoPoint(14.6113, -60.9956)
//	km := fortDeFrance.DistanceKm(leLamentin) // ≈ 8.4
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLon := (other.lon - p.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// setLatitude sets the latitude with bounds validation.
// Note: private setters use pointer receivers to keep validation
// self-encapsulated during construction, while the public API stays
// value-receiver immutable.
func (p *GeoPoint) setLatitude(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLongitude sets the longitude with bounds validation.
func (p *GeoPoint) setLongitude(lon float64) error {
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}
