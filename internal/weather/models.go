package weather

import (
	"fmt"
	"strings"
	"time"
)

// Signal identifies one measured quantity within an hourly sample.
type Signal string

const (
	SignalTemperature   Signal = "temperature"
	SignalPrecipitation Signal = "precipitation"
	SignalWindSpeed     Signal = "wind_speed"
)

// AllSignals lists the signals in their canonical request order.
var AllSignals = []Signal{SignalTemperature, SignalPrecipitation, SignalWindSpeed}

// ParseSignal maps a configuration name onto a Signal.
func ParseSignal(s string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "temperature", "temperature_2m":
		return SignalTemperature, nil
	case "precipitation", "rain":
		return SignalPrecipitation, nil
	case "wind_speed", "wind", "wind_speed_10m":
		return SignalWindSpeed, nil
	default:
		return "", fmt.Errorf("unknown signal %q", s)
	}
}

// Location is a selectable place for which a forecast is charted.
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Code      string  `json:"code" yaml:"code"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	if l.Code != "" {
		return strings.ToUpper(l.Code)
	}
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Seed is the value the jitter series derives its random streams from.
func (l Location) Seed() float64 {
	return l.Latitude + l.Longitude
}

// OhlcRecord summarises one calendar day of temperatures.
type OhlcRecord struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// DailyHigh is one slice of the per-day highest temperature distribution.
type DailyHigh struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Value float64   `json:"value"`
}

// ProfilePoint is one hour-of-day bucket in a cyclic profile.
type ProfilePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CyclicProfile holds 24 hourly buckets plus a closing copy of the first.
type CyclicProfile []ProfilePoint

// JitterPoint is one day of the jittered daily average series.
type JitterPoint struct {
	Day      time.Time `json:"day"`
	RawValue float64   `json:"rawValue"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Size     float64   `json:"size"`
}

// AggregateBundle is everything the presentation layer needs for one location.
type AggregateBundle struct {
	Location   Location      `json:"location"`
	OHLC       []OhlcRecord  `json:"ohlc"`
	DailyHighs []DailyHigh   `json:"dailyHighs"`
	Profile    CyclicProfile `json:"precipitationProfile"`
	Jitter     []JitterPoint `json:"windSeries"`

	// Synthetic lists the signals that were substituted by the fallback generator.
	Synthetic []Signal `json:"synthetic,omitempty"`
}
