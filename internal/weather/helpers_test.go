package weather

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

// hourly builds one sample per hour starting at day0 using the given temperatures.
func hourly(temps []float64, mutate func(i int, s *Sample)) []Sample {
	samples := make([]Sample, len(temps))
	for i, t := range temps {
		samples[i] = Sample{Time: day0.Add(time.Duration(i) * time.Hour), Temperature: t}
		if mutate != nil {
			mutate(i, &samples[i])
		}
	}
	return samples
}

func mustSeries(t *testing.T, samples []Sample) SampleSeries {
	t.Helper()
	s, err := NewSampleSeries(samples)
	require.NoError(t, err)
	return s
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i%24)*step
	}
	return out
}

type fakeProvider struct {
	name     string
	readings HourlyReadings
	err      error

	mu    sync.Mutex
	calls int
	last  ForecastRequest
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchHourly(_ context.Context, req ForecastRequest) (HourlyReadings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.err != nil {
		return HourlyReadings{}, f.err
	}
	return f.readings, nil
}

var errNotCached = errors.New("not cached")

type mapStore struct {
	mu   sync.Mutex
	data map[string]HourlyReadings
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]HourlyReadings)}
}

func (m *mapStore) key(loc Location, days int) string {
	return loc.Key() + "/" + strconv.Itoa(days)
}

func (m *mapStore) SaveReadings(_ context.Context, loc Location, days int, r HourlyReadings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.key(loc, days)] = r
	return nil
}

func (m *mapStore) GetReadings(_ context.Context, loc Location, days int) (HourlyReadings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[m.key(loc, days)]
	if !ok {
		return HourlyReadings{}, errNotCached
	}
	return r, nil
}

func readingsFrom(samples []Sample, withPrecip, withWind bool) HourlyReadings {
	r := HourlyReadings{Provider: "fake"}
	for _, s := range samples {
		r.Time = append(r.Time, s.Time)
		r.Temperature = append(r.Temperature, s.Temperature)
		if withPrecip {
			r.Precipitation = append(r.Precipitation, s.Precipitation)
		}
		if withWind {
			r.WindSpeed = append(r.WindSpeed, s.WindSpeed)
		}
	}
	return r
}
