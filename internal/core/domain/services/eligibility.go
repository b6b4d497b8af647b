package services

import (
	"errors"
	"fmt"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/pkg/errs"
)

// ErrOutOfServiceArea is returned when a delivery endpoint lies outside the
// volunteer's service radius.
var ErrOutOfServiceArea = errors.New("delivery is outside the volunteer service area")

// OutOfServiceAreaError reports which endpoint failed the radius check and by
// how much.
type OutOfServiceAreaError struct {
	Endpoint      string
	DistanceMiles float64
	RadiusMiles   float64
}

// Error implements the error interface.
func (e *OutOfServiceAreaError) Error() string {
	return fmt.Sprintf("%s: %s is %.1f mi away, radius is %.1f mi",
		ErrOutOfServiceArea, e.Endpoint, e.DistanceMiles, e.RadiusMiles)
}

// Unwrap supports errors.Is checks against ErrOutOfServiceArea.
func (e *OutOfServiceAreaError) Unwrap() error {
	return ErrOutOfServiceArea
}

// NewOutOfServiceAreaError creates an OutOfServiceAreaError.
func NewOutOfServiceAreaError(endpoint string, distanceMiles, radiusMiles float64) *OutOfServiceAreaError {
	return &OutOfServiceAreaError{
		Endpoint:      endpoint,
		DistanceMiles: distanceMiles,
		RadiusMiles:   radiusMiles,
	}
}

// EligibilityPolicy decides whether a volunteer's service area covers a
// delivery. Both the pickup store and the recipient drop-off must fall within
// the volunteer's radius.
//
// The policy is deliberately permissive about missing data: a volunteer with
// no service location, or an endpoint with no coordinates, passes the check.
// Claiming stays possible in sparsely geocoded communities; the browsing
// query applies its own stricter filtering.
type EligibilityPolicy struct{}

// NewEligibilityPolicy creates an EligibilityPolicy.
func NewEligibilityPolicy() EligibilityPolicy {
	return EligibilityPolicy{}
}

// CheckEligible returns an OutOfServiceAreaError when a known endpoint lies
// outside the volunteer's radius. serviceLocation, storeLocation, and
// recipientLocation may each be nil.
func (p EligibilityPolicy) CheckEligible(
	serviceLocation *kernel.GeoPoint,
	serviceRadiusMiles float64,
	storeLocation *kernel.GeoPoint,
	recipientLocation *kernel.GeoPoint,
) error {
	if serviceLocation == nil {
		return nil
	}
	if serviceRadiusMiles <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("serviceRadiusMiles",
			fmt.Errorf("%f is not greater than 0", serviceRadiusMiles))
	}

	if err := p.checkEndpoint("store", serviceLocation, serviceRadiusMiles, storeLocation); err != nil {
		return err
	}
	return p.checkEndpoint("recipient", serviceLocation, serviceRadiusMiles, recipientLocation)
}

func (p EligibilityPolicy) checkEndpoint(
	name string,
	center *kernel.GeoPoint,
	radiusMiles float64,
	endpoint *kernel.GeoPoint,
) error {
	if endpoint == nil {
		return nil
	}

	distance, err := endpoint.DistanceMiles(*center)
	if err != nil {
		return err
	}
	if distance > radiusMiles {
		return NewOutOfServiceAreaError(name, distance, radiusMiles)
	}
	return nil
}

// ServiceArea is the community-wide operating boundary. Deliveries and
// recipients must register inside it.
type ServiceArea struct {
	center      kernel.GeoPoint
	radiusMiles float64
}

// Sacramento-centered defaults matching the community the platform launched in.
const (
	DefaultServiceAreaLatitude  = 38.5816
	DefaultServiceAreaLongitude = -121.4944
	DefaultServiceAreaRadius    = 50.0
)

// NewServiceArea creates a ServiceArea with the given center and radius.
func NewServiceArea(center kernel.GeoPoint, radiusMiles float64) (ServiceArea, error) {
	if err := center.Validate(); err != nil {
		return ServiceArea{}, errs.NewValueIsInvalidErrorWithCause("center", err)
	}
	if radiusMiles <= 0 {
		return ServiceArea{}, errs.NewValueIsInvalidErrorWithCause("radiusMiles",
			fmt.Errorf("%f is not greater than 0", radiusMiles))
	}
	return ServiceArea{center: center, radiusMiles: radiusMiles}, nil
}

// DefaultServiceArea creates the Sacramento-centered default area.
func DefaultServiceArea() ServiceArea {
	center, _ := kernel.NewGeoPoint(DefaultServiceAreaLatitude, DefaultServiceAreaLongitude)
	return ServiceArea{center: center, radiusMiles: DefaultServiceAreaRadius}
}

// Center returns the area's center point.
func (a ServiceArea) Center() kernel.GeoPoint { return a.center }

// RadiusMiles returns the area's radius.
func (a ServiceArea) RadiusMiles() float64 { return a.radiusMiles }

// Contains reports whether the point lies inside the operating boundary.
func (a ServiceArea) Contains(p kernel.GeoPoint) (bool, error) {
	return p.IsWithinRadius(a.center, a.radiusMiles)
}
