package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// It needs no API key.
type OpenMeteoProvider struct {
	base
}

// openMeteoMaxDays is the longest forecast window the API serves.
const openMeteoMaxDays = 16

var openMeteoVariables = map[weather.Signal]string{
	weather.SignalTemperature:   "temperature_2m",
	weather.SignalPrecipitation: "precipitation",
	weather.SignalWindSpeed:     "wind_speed_10m",
}

func NewOpenMeteoProvider(client *http.Client, opts ...Option) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		base: newBase("openmeteo", "https://api.open-meteo.com/v1/forecast", client, opts),
	}
}

type openMeteoResponse struct {
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Timezone         string `json:"timezone"`
	Hourly           struct {
		Time          []int64    `json:"time"`
		Temperature2m []*float64 `json:"temperature_2m"`
		Precipitation []*float64 `json:"precipitation"`
		WindSpeed10m  []*float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchHourly(ctx context.Context, req weather.ForecastRequest) (weather.HourlyReadings, error) {
	days := req.Days
	if days <= 0 || days > openMeteoMaxDays {
		return weather.HourlyReadings{}, fmt.Errorf("openmeteo: forecast days must be within 1..%d, got %d", openMeteoMaxDays, days)
	}

	// Variables are requested in the caller's signal order.
	vars := make([]string, 0, len(req.Signals))
	for _, sig := range req.Signals {
		if v, ok := openMeteoVariables[sig]; ok {
			vars = append(vars, v)
		}
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(req.Location.Latitude, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(req.Location.Longitude, 'f', 4, 64))
	values.Set("hourly", strings.Join(vars, ","))
	values.Set("timezone", "auto")
	values.Set("timeformat", "unixtime")
	values.Set("forecast_days", strconv.Itoa(days))

	var payload openMeteoResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.HourlyReadings{}, err
	}

	zone := zoneFor(payload.Timezone, payload.UTCOffsetSeconds)
	times := make([]time.Time, len(payload.Hourly.Time))
	for i, ts := range payload.Hourly.Time {
		times[i] = time.Unix(ts, 0).In(zone)
	}

	readings := weather.HourlyReadings{
		Provider:    p.name,
		FetchedAt:   time.Now().UTC(),
		Time:        times,
		Temperature: column(payload.Hourly.Temperature2m, 1),
	}
	if req.Wants(weather.SignalPrecipitation) {
		readings.Precipitation = column(payload.Hourly.Precipitation, 1)
	}
	if req.Wants(weather.SignalWindSpeed) {
		readings.WindSpeed = column(payload.Hourly.WindSpeed10m, 1)
	}
	return readings, nil
}
