package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-charts/internal/weather"
)

// OpenWeatherProvider implements the weather.Provider interface for the
// OpenWeatherMap One Call API, which serves 48 hourly steps.
type OpenWeatherProvider struct {
	base
	apiKey string
}

const openWeatherHours = 48

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		base:   newBase("openweather", "https://api.openweathermap.org/data/3.0/onecall", client, opts),
		apiKey: apiKey,
	}
}

type openWeatherResponse struct {
	Timezone       string `json:"timezone"`
	TimezoneOffset int    `json:"timezone_offset"`
	Hourly         []struct {
		Dt        int64   `json:"dt"`
		Temp      float64 `json:"temp"`
		WindSpeed float64 `json:"wind_speed"`
		Rain      *struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
		Snow *struct {
			OneH float64 `json:"1h"`
		} `json:"snow"`
	} `json:"hourly"`
}

func (p *OpenWeatherProvider) FetchHourly(ctx context.Context, req weather.ForecastRequest) (weather.HourlyReadings, error) {
	if p.apiKey == "" {
		return weather.HourlyReadings{}, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("exclude", "current,minutely,daily,alerts")
	values.Set("lat", strconv.FormatFloat(req.Location.Latitude, 'f', 4, 64))
	values.Set("lon", strconv.FormatFloat(req.Location.Longitude, 'f', 4, 64))

	var payload openWeatherResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.HourlyReadings{}, err
	}

	limit := req.Days * 24
	if limit <= 0 || limit > openWeatherHours {
		limit = openWeatherHours
	}

	zone := zoneFor(payload.Timezone, payload.TimezoneOffset)
	readings := weather.HourlyReadings{
		Provider:  p.name,
		FetchedAt: time.Now().UTC(),
	}
	wantPrecip := req.Wants(weather.SignalPrecipitation)
	wantWind := req.Wants(weather.SignalWindSpeed)

	for i, h := range payload.Hourly {
		if i >= limit {
			break
		}
		readings.Time = append(readings.Time, time.Unix(h.Dt, 0).In(zone))
		readings.Temperature = append(readings.Temperature, h.Temp)
		if wantPrecip {
			var mm float64
			if h.Rain != nil {
				mm += h.Rain.OneH
			}
			if h.Snow != nil {
				mm += h.Snow.OneH
			}
			readings.Precipitation = append(readings.Precipitation, mm)
		}
		if wantWind {
			// m/s to km/h
			readings.WindSpeed = append(readings.WindSpeed, h.WindSpeed*3.6)
		}
	}
	return readings, nil
}
