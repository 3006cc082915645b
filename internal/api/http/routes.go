package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-charts/internal/locations"
	"github.com/i474232898/weather-charts/internal/weather"
)

var validate = validator.New()

// ChartService produces chart bundles for a location.
type ChartService interface {
	Charts(ctx context.Context, loc weather.Location, days int) (weather.AggregateBundle, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// defaultDays applies when a request omits the days parameter.
func RegisterRoutes(app *fiber.App, service ChartService, resolver *locations.Resolver, defaultDays int) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"locations": resolver.Catalog().All(),
		})
	})

	v1.Get("/charts", func(c *fiber.Ctx) error {
		bundle, runID, err := charts(c, service, resolver, defaultDays)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"runId":  runID,
			"bundle": bundle,
		})
	})

	v1.Get("/charts/ohlc", func(c *fiber.Ctx) error {
		bundle, runID, err := charts(c, service, resolver, defaultDays)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"runId":    runID,
			"location": bundle.Location,
			"ohlc":     bundle.OHLC,
		})
	})
}

// chartsQuery selects a catalog location by code, or a city to geocode.
type chartsQuery struct {
	Code    string `query:"code" validate:"omitempty,len=2,alpha"`
	City    string `query:"city" validate:"required_without=Code"`
	Country string `query:"country" validate:"required_with=City"`
	Days    int    `query:"days" validate:"omitempty,min=1,max=16"`
}

func charts(c *fiber.Ctx, service ChartService, resolver *locations.Resolver, defaultDays int) (weather.AggregateBundle, string, error) {
	var q chartsQuery
	if err := c.QueryParser(&q); err != nil {
		return weather.AggregateBundle{}, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return weather.AggregateBundle{}, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if q.Days == 0 {
		q.Days = defaultDays
	}

	ctx := c.UserContext()
	loc, err := resolver.Resolve(ctx, q.Code, q.City, q.Country)
	if err != nil {
		return weather.AggregateBundle{}, "", toHTTPError(err)
	}

	bundle, err := service.Charts(ctx, loc, q.Days)
	if err != nil {
		return weather.AggregateBundle{}, "", toHTTPError(err)
	}

	runID := uuid.NewString()
	c.Set("X-Run-Id", runID)
	return bundle, runID, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, locations.ErrUnknownLocation):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, locations.ErrGeocoderDisabled):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, weather.ErrInvalidSeries):
		return fiber.NewError(fiber.StatusBadGateway, "provider returned an invalid series")
	case errors.Is(err, weather.ErrFetchFailed), errors.Is(err, weather.ErrNoProviders):
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather data is currently unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "timed out fetching weather data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build charts")
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
