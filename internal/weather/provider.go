package weather

import (
	"context"
	"fmt"
	"time"
)

// ForecastRequest describes one hourly forecast fetch.
type ForecastRequest struct {
	Location Location
	Signals  []Signal
	Days     int
}

// Wants reports whether the request asks for sig.
func (r ForecastRequest) Wants(sig Signal) bool {
	for _, s := range r.Signals {
		if s == sig {
			return true
		}
	}
	return false
}

// HourlyReadings is a provider's normalized hourly response.
// Time and Temperature are mandatory; a nil optional column was not delivered.
type HourlyReadings struct {
	Provider  string    `json:"provider"`
	FetchedAt time.Time `json:"fetchedAt"`

	Time          []time.Time `json:"time"`
	Temperature   []float64   `json:"temperatureC"`
	Precipitation []float64   `json:"precipitationMm,omitempty"`
	WindSpeed     []float64   `json:"windSpeedKmh,omitempty"`
}

// Series converts the columns into a SampleSeries. Optional columns whose
// length does not match Time are treated as not delivered.
func (r HourlyReadings) Series() (SampleSeries, error) {
	n := len(r.Time)
	if len(r.Temperature) != n {
		return SampleSeries{}, fmt.Errorf("%w: %d timestamps but %d temperatures", ErrInvalidSeries, n, len(r.Temperature))
	}

	precip := r.Precipitation
	if len(precip) != n {
		precip = nil
	}
	wind := r.WindSpeed
	if len(wind) != n {
		wind = nil
	}

	samples := make([]Sample, n)
	for i := range r.Time {
		samples[i] = Sample{Time: r.Time[i], Temperature: r.Temperature[i]}
		if precip != nil {
			samples[i].Precipitation = precip[i]
		}
		if wind != nil {
			samples[i].WindSpeed = wind[i]
		}
	}
	return NewSampleSeries(samples)
}

// Provider abstracts an hourly forecast source (e.g. Open-Meteo, WeatherAPI, OpenWeather).
type Provider interface {
	Name() string
	FetchHourly(ctx context.Context, req ForecastRequest) (HourlyReadings, error)
}

// Store caches fetched readings per location and forecast window.
type Store interface {
	SaveReadings(ctx context.Context, loc Location, days int, readings HourlyReadings) error
	GetReadings(ctx context.Context, loc Location, days int) (HourlyReadings, error)
}
