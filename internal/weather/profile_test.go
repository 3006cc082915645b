package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfile_AveragesPerHour(t *testing.T) {
	// Two days; precipitation is the hour on day one and twice the hour on day two.
	samples := hourly(ramp(48, 10, 0.25), func(i int, s *Sample) {
		h := float64(i % 24)
		if i < 24 {
			s.Precipitation = h
		} else {
			s.Precipitation = 2 * h
		}
	})

	profile := BuildProfile(mustSeries(t, samples), SignalPrecipitation, NewSyntheticFallback(DefaultFallbackSeed))
	require.Len(t, profile, 25)

	for h := 0; h < 24; h++ {
		assert.Equal(t, hourLabel(h), profile[h].Label)
		assert.InDelta(t, 1.5*float64(h), profile[h].Value, 1e-9)
	}
	assert.Equal(t, profile[0], profile[24])
	assert.Equal(t, "00:00", profile[24].Label)
}

func TestBuildProfile_EmptyBucketsAreZero(t *testing.T) {
	samples := hourly([]float64{5, 6, 7}, func(i int, s *Sample) {
		s.Precipitation = 1
	})

	profile := BuildProfile(mustSeries(t, samples), SignalPrecipitation, NewSyntheticFallback(DefaultFallbackSeed))
	require.Len(t, profile, 25)
	assert.Equal(t, 1.0, profile[2].Value)
	for h := 3; h < 24; h++ {
		assert.Equal(t, 0.0, profile[h].Value, "hour %d", h)
	}
}

func TestBuildProfile_FallbackWhenAllZero(t *testing.T) {
	series := mustSeries(t, hourly(ramp(72, -2, 0.7), nil))
	fb := NewSyntheticFallback(DefaultFallbackSeed)

	first := BuildProfile(series, SignalPrecipitation, fb)
	second := BuildProfile(series, SignalPrecipitation, fb)
	require.Len(t, first, 25)
	assert.Equal(t, first, second)
	assert.Equal(t, first[0], first[24])

	for h := 0; h < 24; h++ {
		assert.GreaterOrEqual(t, first[h].Value, 0.0)
		assert.LessOrEqual(t, first[h].Value, 6.0)
	}
	// Hour 0 is the coldest bucket, hour 23 the warmest.
	assert.GreaterOrEqual(t, first[0].Value, 5.0)
	assert.LessOrEqual(t, first[23].Value, 1.0)
}

func TestBuildProfile_EmptySeries(t *testing.T) {
	profile := BuildProfile(mustSeries(t, nil), SignalPrecipitation, NewSyntheticFallback(DefaultFallbackSeed))
	require.Len(t, profile, 25)
	for _, p := range profile {
		assert.GreaterOrEqual(t, p.Value, 2.5)
		assert.Less(t, p.Value, 3.5)
	}
}
