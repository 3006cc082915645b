package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-charts/internal/weather"
	"github.com/i474232898/weather-charts/internal/weather/providers"
)

// MaxForecastDays is the longest window any provider serves.
const MaxForecastDays = 16

type LogConfig struct {
	Level  string
	Format string
}

type ForecastConfig struct {
	Days      int
	Signals   []weather.Signal
	Providers []string
}

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

type RedisConfig struct {
	Addr     string // empty = in-memory cache
	Password string
	DB       int
}

type RefreshConfig struct {
	Interval  time.Duration
	Cron      string // takes precedence over Interval when set
	Locations []string
}

type AppConfig struct {
	Port string
	Log  LogConfig

	Forecast    ForecastConfig
	HTTPTimeout time.Duration

	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	Cache   CacheConfig
	Redis   RedisConfig
	Refresh RefreshConfig

	FallbackSeed  uint64
	LocationsFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("forecast.days", MaxForecastDays)
	v.SetDefault("forecast.signals", "temperature,precipitation,wind_speed")
	v.SetDefault("forecast.providers", "openmeteo")
	v.SetDefault("http.timeout", "10s")

	v.SetDefault("openweather.api_key", "")
	v.SetDefault("weatherapi.api_key", "")
	v.SetDefault("geocoder.api_key", "")

	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 128)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("refresh.interval", "30m")
	v.SetDefault("refresh.cron", "")
	v.SetDefault("refresh.locations", "GB")

	v.SetDefault("fallback.seed", weather.DefaultFallbackSeed)
	v.SetDefault("locations.file", "")
}

// Load reads configuration from .env, an optional config.yaml and the
// environment, in increasing order of precedence.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: v.GetString("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Forecast: ForecastConfig{
			Days:      v.GetInt("forecast.days"),
			Providers: stringList(v, "forecast.providers"),
		},
		OpenWeatherAPIKey: v.GetString("openweather.api_key"),
		WeatherAPIKey:     v.GetString("weatherapi.api_key"),
		GeocoderAPIKey:    v.GetString("geocoder.api_key"),
		Cache: CacheConfig{
			MaxEntries: v.GetInt("cache.max_entries"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Refresh: RefreshConfig{
			Cron:      strings.TrimSpace(v.GetString("refresh.cron")),
			Locations: stringList(v, "refresh.locations"),
		},
		FallbackSeed:  v.GetUint64("fallback.seed"),
		LocationsFile: v.GetString("locations.file"),
	}

	for _, name := range stringList(v, "forecast.signals") {
		sig, err := weather.ParseSignal(name)
		if err != nil {
			return nil, fmt.Errorf("invalid FORECAST_SIGNALS: %w", err)
		}
		if !slices.Contains(cfg.Forecast.Signals, sig) {
			cfg.Forecast.Signals = append(cfg.Forecast.Signals, sig)
		}
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "http.timeout"); err != nil {
		return nil, err
	}
	if cfg.Cache.TTL, err = duration(v, "cache.ttl"); err != nil {
		return nil, err
	}
	if cfg.Refresh.Interval, err = duration(v, "refresh.interval"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and names that viper cannot.
func (c *AppConfig) Validate() error {
	if c.Forecast.Days < 1 || c.Forecast.Days > MaxForecastDays {
		return fmt.Errorf("invalid FORECAST_DAYS: must be within 1..%d, got %d", MaxForecastDays, c.Forecast.Days)
	}
	if len(c.Forecast.Providers) == 0 {
		return errors.New("invalid FORECAST_PROVIDERS: at least one provider is required")
	}
	for _, p := range c.Forecast.Providers {
		if !slices.Contains(providers.Names, strings.ToLower(p)) {
			return fmt.Errorf("invalid FORECAST_PROVIDERS: unknown provider %q", p)
		}
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT: must be positive, got %s", c.HTTPTimeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid CACHE_TTL: must not be negative, got %s", c.Cache.TTL)
	}
	if c.Refresh.Cron != "" {
		if _, err := cron.ParseStandard(c.Refresh.Cron); err != nil {
			return fmt.Errorf("invalid REFRESH_CRON: %w", err)
		}
	} else if c.Refresh.Interval < 0 {
		return fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative, got %s", c.Refresh.Interval)
	}
	return nil
}

// stringList accepts a comma separated string (env, defaults) or a YAML list.
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case string:
		raw = strings.Split(val, ",")
	default:
		raw = cast.ToStringSlice(val)
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		envName := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		return 0, fmt.Errorf("invalid %s: %w", envName, err)
	}
	return d, nil
}
