package providers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/i474232898/weather-charts/internal/weather"
)

// APIKeys holds credentials for providers that need them.
type APIKeys struct {
	OpenWeather string
	WeatherAPI  string
}

// Names lists the provider names understood by Build.
var Names = []string{"openmeteo", "weatherapi", "openweather"}

// Build constructs providers by name, preserving order.
func Build(names []string, client *http.Client, keys APIKeys, opts ...Option) ([]weather.Provider, error) {
	provs := make([]weather.Provider, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "openmeteo":
			provs = append(provs, NewOpenMeteoProvider(client, opts...))
		case "weatherapi":
			provs = append(provs, NewWeatherAPIProvider(client, keys.WeatherAPI, opts...))
		case "openweather":
			provs = append(provs, NewOpenWeatherProvider(client, keys.OpenWeather, opts...))
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}
	return provs, nil
}
