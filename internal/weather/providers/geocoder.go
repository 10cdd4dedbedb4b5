package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

// the geocoder package keeps its key in a package variable
var geocoderKeyMu sync.Mutex

// GoogleGeocoder names coordinates through Google reverse geocoding. It is
// only consulted when the weather API returns a place without a name.
type GoogleGeocoder struct {
	apiKey  string
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

var _ weather.PlaceNamer = (*GoogleGeocoder)(nil)

// NewGoogleGeocoder returns nil when apiKey is empty.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	if apiKey == "" {
		return nil
	}
	return &GoogleGeocoder{apiKey: apiKey, reverse: geocoder.GeocodingReverse}
}

// CityAt returns the first city name found for the coordinates.
func (g *GoogleGeocoder) CityAt(ctx context.Context, at weather.Coordinates) (string, error) {
	type result struct {
		addrs []geocoder.Address
		err   error
	}
	done := make(chan result, 1)

	go func() {
		geocoderKeyMu.Lock()
		geocoder.ApiKey = g.apiKey
		addrs, err := g.reverse(geocoder.Location{Latitude: at.Lat, Longitude: at.Lon})
		geocoderKeyMu.Unlock()
		done <- result{addrs: addrs, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("reverse geocoding failed: %w", r.err)
		}
		for _, a := range r.addrs {
			if name := strings.TrimSpace(a.City); name != "" {
				return name, nil
			}
		}
		return "", fmt.Errorf("no city found at %f,%f", at.Lat, at.Lon)
	}
}
