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

// weatherAPIMaxDays is the longest forecast window WeatherAPI.com serves.
const weatherAPIMaxDays = 14

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	base
	apiKey string
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts ...Option) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		base:   newBase("weatherapi", "https://api.weatherapi.com/v1/forecast.json", client, opts),
		apiKey: apiKey,
	}
}

type weatherAPIResponse struct {
	Location struct {
		TzID string `json:"tz_id"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64   `json:"time_epoch"`
				TempC     float64 `json:"temp_c"`
				PrecipMm  float64 `json:"precip_mm"`
				WindKph   float64 `json:"wind_kph"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchHourly(ctx context.Context, req weather.ForecastRequest) (weather.HourlyReadings, error) {
	if p.apiKey == "" {
		return weather.HourlyReadings{}, fmt.Errorf("weatherapi: %w", errMissingAPIKey)
	}

	days := req.Days
	if days > weatherAPIMaxDays {
		days = weatherAPIMaxDays
	}
	if days <= 0 {
		return weather.HourlyReadings{}, fmt.Errorf("weatherapi: forecast days must be positive, got %d", req.Days)
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", fmt.Sprintf("%f,%f", req.Location.Latitude, req.Location.Longitude))
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	var payload weatherAPIResponse
	if err := p.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.HourlyReadings{}, err
	}

	zone := zoneFor(payload.Location.TzID, 0)

	readings := weather.HourlyReadings{
		Provider:  p.name,
		FetchedAt: time.Now().UTC(),
	}
	wantPrecip := req.Wants(weather.SignalPrecipitation)
	wantWind := req.Wants(weather.SignalWindSpeed)

	for _, day := range payload.Forecast.ForecastDay {
		for _, h := range day.Hour {
			readings.Time = append(readings.Time, time.Unix(h.TimeEpoch, 0).In(zone))
			readings.Temperature = append(readings.Temperature, h.TempC)
			if wantPrecip {
				readings.Precipitation = append(readings.Precipitation, h.PrecipMm)
			}
			if wantWind {
				readings.WindSpeed = append(readings.WindSpeed, h.WindKph)
			}
		}
	}
	return readings, nil
}
