package locations

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-charts/internal/weather"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	all := c.All()
	assert.Len(t, all, 54)
	assert.Equal(t, "Afghanistan", all[0].Name)
	assert.Equal(t, "Vietnam", all[len(all)-1].Name)

	gb, err := c.Lookup("gb")
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", gb.Name)
	assert.InDelta(t, 55.3781, gb.Latitude, 1e-9)
	assert.InDelta(t, -3.436, gb.Longitude, 1e-9)

	no, err := c.Lookup("NO")
	require.NoError(t, err)
	assert.Equal(t, "Norway", no.Name)

	_, err = c.Lookup("XX")
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "changed"
	assert.Equal(t, "Afghanistan", c.All()[0].Name)
}

func TestLookupAll(t *testing.T) {
	c := Default()

	locs, err := c.LookupAll([]string{"GB", "fr"})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "France", locs[1].Name)

	_, err = c.LookupAll([]string{"GB", "ZZ"})
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":      "countries: []",
		"no code":    `countries: [{name: "X", latitude: 1, longitude: 1}]`,
		"range":      `countries: [{name: "X", code: "XX", latitude: 91, longitude: 1}]`,
		"duplicate":  `countries: [{name: "X", code: "XX"}, {name: "Y", code: "xx"}]`,
		"not a list": "countries: 3",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`countries:
  - name: Iceland
    code: is
    latitude: 64.9631
    longitude: -19.0208
`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	loc, err := c.Lookup("IS")
	require.NoError(t, err)
	assert.Equal(t, "Iceland", loc.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type stubGeocoder struct {
	loc weather.Location
	err error
}

func (s stubGeocoder) Geocode(_ context.Context, city, country string) (weather.Location, error) {
	if s.err != nil {
		return weather.Location{}, s.err
	}
	loc := s.loc
	loc.Name = city + ", " + country
	return loc, nil
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	geo := stubGeocoder{loc: weather.Location{Latitude: 48.8566, Longitude: 2.3522}}
	r := NewResolver(Default(), geo)

	loc, err := r.Resolve(ctx, "de", "ignored", "")
	require.NoError(t, err)
	assert.Equal(t, "Germany", loc.Name)

	loc, err = r.Resolve(ctx, "", "Paris", "FR")
	require.NoError(t, err)
	assert.Equal(t, "Paris, France", loc.Name)
	assert.Empty(t, loc.Code)
	assert.Equal(t, "48.8566,2.3522", loc.Key())

	loc, err = r.Resolve(ctx, "", "Paris", "Texas")
	require.NoError(t, err)
	assert.Equal(t, "Paris, Texas", loc.Name)

	_, err = r.Resolve(ctx, "", "", "")
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestResolverWithoutGeocoder(t *testing.T) {
	r := NewResolver(Default(), nil)
	_, err := r.Resolve(context.Background(), "", "Paris", "FR")
	assert.ErrorIs(t, err, ErrGeocoderDisabled)
}

func TestResolverPropagatesGeocoderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	r := NewResolver(Default(), stubGeocoder{err: boom})
	_, err := r.Resolve(context.Background(), "", "Paris", "FR")
	assert.ErrorIs(t, err, boom)
}

func TestGoogleGeocoderRequiresKey(t *testing.T) {
	_, err := NewGoogleGeocoder("").Geocode(context.Background(), "Paris", "France")
	assert.ErrorIs(t, err, ErrGeocoderDisabled)
}
