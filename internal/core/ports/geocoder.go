package ports

import (
	"context"
	"errors"

	"communitydelivery/internal/core/domain/model/kernel"
)

// ErrExternalLookupFailed is returned when the geocoding provider is
// unreachable or returns an unusable response. Callers decide whether the
// operation degrades (store without coordinates) or fails.
var ErrExternalLookupFailed = errors.New("external geocoding lookup failed")

// Geocoder resolves a street address to coordinates via an external provider.
type Geocoder interface {
	// Geocode resolves the address. Returns ErrExternalLookupFailed when
	// the provider cannot be reached or cannot resolve the address.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
