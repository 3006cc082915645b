package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-charts/internal/weather"
)

// ErrGeocoderDisabled is returned for city lookups when no geocoding key is configured.
var ErrGeocoderDisabled = errors.New("geocoding is not configured")

// Geocoder turns a city and country into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city, country string) (weather.Location, error)
}

// GoogleGeocoder resolves addresses through the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey string
}

// the geocoder package keeps its key in a package variable
var geocoderMu sync.Mutex

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, city, country string) (weather.Location, error) {
	if g == nil || g.apiKey == "" {
		return weather.Location{}, ErrGeocoderDisabled
	}
	if err := ctx.Err(); err != nil {
		return weather.Location{}, err
	}

	geocoderMu.Lock()
	geocoder.ApiKey = g.apiKey
	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
	geocoderMu.Unlock()
	if err != nil {
		return weather.Location{}, fmt.Errorf("geocode %s, %s: %w", city, country, err)
	}

	return weather.Location{
		Name:      fmt.Sprintf("%s, %s", city, country),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}, nil
}

// Resolver picks a location from the catalog by code, or geocodes a city.
type Resolver struct {
	catalog  *Catalog
	geocoder Geocoder
}

// NewResolver creates a Resolver. geo may be nil, which disables city lookups.
func NewResolver(catalog *Catalog, geo Geocoder) *Resolver {
	return &Resolver{catalog: catalog, geocoder: geo}
}

// Catalog exposes the underlying catalog.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve prefers code when set; otherwise it geocodes city and country.
func (r *Resolver) Resolve(ctx context.Context, code, city, country string) (weather.Location, error) {
	if code = strings.TrimSpace(code); code != "" {
		return r.catalog.Lookup(code)
	}
	if strings.TrimSpace(city) == "" {
		return weather.Location{}, fmt.Errorf("%w: no code or city given", ErrUnknownLocation)
	}
	if r.geocoder == nil {
		return weather.Location{}, ErrGeocoderDisabled
	}

	loc, err := r.geocoder.Geocode(ctx, strings.TrimSpace(city), strings.TrimSpace(country))
	if err != nil {
		return weather.Location{}, err
	}

	// Country given as a catalog code reads better by name.
	if known, lookupErr := r.catalog.Lookup(country); lookupErr == nil {
		loc.Name = fmt.Sprintf("%s, %s", city, known.Name)
	}
	return loc, nil
}
