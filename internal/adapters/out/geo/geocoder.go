// Package geo implements the geocoding port against a Google-style geocode
// HTTP endpoint. Lookup failures are folded into ports.ErrExternalLookupFailed
// so callers can decide between degrading and failing without inspecting
// transport details.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"communitydelivery/internal/core/domain/model/kernel"
	"communitydelivery/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// HTTPGeocoder implements ports.Geocoder over a geocode JSON endpoint
// ({"status": "OK", "results": [{"geometry": {"location": {...}}}]}).
type HTTPGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGeocoder creates a geocoder for the given endpoint. The API key may
// be empty for providers that do not require one.
func NewHTTPGeocoder(baseURL, apiKey string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves the address to coordinates.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	params := url.Values{}
	params.Set("address", address)
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrExternalLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrExternalLookupFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrExternalLookupFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("%w: provider returned status %d",
			ports.ErrExternalLookupFailed, resp.StatusCode)
	}

	var parsed geocodeResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrExternalLookupFailed, err)
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("%w: no result for address", ports.ErrExternalLookupFailed)
	}

	location := parsed.Results[0].Geometry.Location
	point, err := kernel.NewGeoPoint(location.Lat, location.Lng)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrExternalLookupFailed, err)
	}

	return point, nil
}
