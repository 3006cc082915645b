// Package locations holds the selectable country catalog and resolves
// ad-hoc city lookups through a geocoder.
package locations

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-charts/internal/weather"
)

// ErrUnknownLocation is returned when a country code is not in the catalog.
var ErrUnknownLocation = errors.New("unknown location")

//go:embed countries.yaml
var builtinCountries []byte

type catalogFile struct {
	Countries []weather.Location `yaml:"countries"`
}

// Catalog is an immutable set of locations indexed by country code.
type Catalog struct {
	ordered []weather.Location
	byCode  map[string]weather.Location
}

// Default returns the built-in country catalog.
func Default() *Catalog {
	c, err := Parse(builtinCountries)
	if err != nil {
		panic(fmt.Sprintf("locations: built-in catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file with a top-level "countries" list.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and checks every entry.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Countries) == 0 {
		return nil, errors.New("catalog has no countries")
	}

	c := &Catalog{byCode: make(map[string]weather.Location, len(f.Countries))}
	for _, loc := range f.Countries {
		loc.Code = strings.ToUpper(strings.TrimSpace(loc.Code))
		switch {
		case loc.Code == "":
			return nil, fmt.Errorf("catalog entry %q has no code", loc.Name)
		case loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180:
			return nil, fmt.Errorf("catalog entry %s has out of range coordinates", loc.Code)
		}
		if _, dup := c.byCode[loc.Code]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %s", loc.Code)
		}
		c.byCode[loc.Code] = loc
		c.ordered = append(c.ordered, loc)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		return c.ordered[i].Name < c.ordered[j].Name
	})
	return c, nil
}

// Lookup finds a location by its country code, case-insensitively.
func (c *Catalog) Lookup(code string) (weather.Location, error) {
	loc, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return weather.Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, code)
	}
	return loc, nil
}

// All returns the catalog sorted by name.
func (c *Catalog) All() []weather.Location {
	out := make([]weather.Location, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// LookupAll resolves a list of codes, failing on the first unknown one.
func (c *Catalog) LookupAll(codes []string) ([]weather.Location, error) {
	locs := make([]weather.Location, 0, len(codes))
	for _, code := range codes {
		loc, err := c.Lookup(code)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}
