package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/weather-charts/internal/api/http"
	"github.com/i474232898/weather-charts/internal/config"
	"github.com/i474232898/weather-charts/internal/locations"
	"github.com/i474232898/weather-charts/internal/logging"
	"github.com/i474232898/weather-charts/internal/scheduler"
	"github.com/i474232898/weather-charts/internal/store"
	"github.com/i474232898/weather-charts/internal/weather"
	"github.com/i474232898/weather-charts/internal/weather/providers"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

// run wires the service and blocks until SIGINT or SIGTERM. Deferred cleanup
// runs on every return path.
func run() error {
	// Load configuration (.env, config.yaml, environment).
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	catalog := locations.Default()
	if cfg.LocationsFile != "" {
		if catalog, err = locations.LoadFile(cfg.LocationsFile); err != nil {
			return fmt.Errorf("failed to load locations: %w", err)
		}
	}

	var geo locations.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geo = locations.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	}
	resolver := locations.NewResolver(catalog, geo)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker), tried in configured order.
	provs, err := providers.Build(cfg.Forecast.Providers, httpClient, providers.APIKeys{
		OpenWeather: cfg.OpenWeatherAPIKey,
		WeatherAPI:  cfg.WeatherAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to build providers: %w", err)
	}

	// Readings cache: Redis when configured, otherwise in memory.
	var readings weather.Store
	if cfg.Redis.Addr != "" {
		rdb, err := store.DialRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Warn("error closing redis client")
			}
		}()
		readings = store.NewRedisStore(rdb, cfg.Cache.TTL)
		log.WithField("addr", cfg.Redis.Addr).Info("using redis readings cache")
	} else {
		readings = store.NewMemoryStore(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	pipeline := weather.NewPipeline(weather.NewSyntheticFallback(cfg.FallbackSeed))
	service := weather.NewService(readings, provs, pipeline,
		weather.WithSignals(cfg.Forecast.Signals),
		weather.WithLogger(log),
	)

	// Scheduler that periodically warms the cache.
	warm, err := catalog.LookupAll(cfg.Refresh.Locations)
	if err != nil {
		return fmt.Errorf("invalid REFRESH_LOCATIONS: %w", err)
	}
	sched := scheduler.New(scheduler.Config{
		Locations: warm,
		Days:      cfg.Forecast.Days,
		Interval:  cfg.Refresh.Interval,
		Cron:      cfg.Refresh.Cron,
	}, service, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-charts",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.HTTPTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New(logger.Config{Output: log.Writer()}))
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-charts",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, resolver, cfg.Forecast.Days)

	go func() {
		log.WithField("port", cfg.Port).Info("starting http server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
