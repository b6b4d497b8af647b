package kernel

import (
	"errors"
	"fmt"
	"math"

	"communitydelivery/internal/pkg/errs"
	"communitydelivery/internal/pkg/guard"
)

const (
	// EarthRadiusMiles is the mean earth radius used by the haversine formula.
	// Distances across the app are expressed in statute miles.
	EarthRadiusMiles = 3959.0

	// MinLatitude and MaxLatitude bound valid latitude values in degrees.
	MinLatitude = -90.0
	MaxLatitude = 90.0
	// MinLongitude and MaxLongitude bound valid longitude values in degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// DefaultFuzzPrecision is the decimal precision applied to recipient
	// coordinates before persistence. Two decimal places is roughly 0.7 mile
	// of positional uncertainty, enough for eligibility matching without
	// revealing an exact address.
	DefaultFuzzPrecision = 2
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value
// GeoPoint that was not created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable latitude/longitude pair in decimal degrees.
// It carries the geographic math the matching core depends on: great-circle
// distance, radius containment, and privacy fuzzing.
//
// Example:
//
//	store, _ := kernel.NewGeoPoint(38.60, -121.41)
//	center, _ := kernel.NewGeoPoint(38.58, -121.49)
//	miles, _ := store.DistanceMiles(center)
type GeoPoint struct { //nolint:recvcheck //pointer receivers used for construction-time setters
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after validating that latitude and longitude
// are within their respective degree bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer for logging and debugging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceMiles computes the great-circle distance to another point using the
// haversine formula. The result is symmetric and zero for identical points.
func (p GeoPoint) DistanceMiles(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(p.latitude)
	lat2 := degreesToRadians(other.latitude)
	deltaLat := degreesToRadians(other.latitude - p.latitude)
	deltaLng := degreesToRadians(other.longitude - p.longitude)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c, nil
}

// IsWithinRadius reports whether the point lies within radiusMiles of center.
// The boundary is inclusive, so a point exactly radiusMiles away qualifies,
// and every point is within radius zero of itself.
func (p GeoPoint) IsWithinRadius(center GeoPoint, radiusMiles float64) (bool, error) {
	if radiusMiles < 0 {
		return false, errs.NewValueIsInvalidErrorWithCause("radiusMiles",
			fmt.Errorf("%f is negative", radiusMiles))
	}

	distance, err := p.DistanceMiles(center)
	if err != nil {
		return false, err
	}

	return distance <= radiusMiles, nil
}

// Fuzzed returns a copy of the point rounded to the given number of decimal
// places. This is a one-way precision degradation applied once at write time;
// the original coordinates are never persisted alongside the fuzzed ones.
func (p GeoPoint) Fuzzed(decimals int) (GeoPoint, error) {
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	if decimals < 0 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("decimals",
			fmt.Errorf("%d is negative", decimals))
	}

	factor := math.Pow(10, float64(decimals))
	return NewGeoPoint(
		math.Round(p.latitude*factor)/factor,
		math.Round(p.longitude*factor)/factor,
	)
}

// setLatitude validates and sets the latitude. Pointer receiver setters are
// used only during construction, mirroring the self-encapsulation used by the
// other value objects.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	p.longitude = longitude
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
