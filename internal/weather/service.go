package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoProviders is returned when the service has no data source configured.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrFetchFailed is returned when every provider failed for a request.
	ErrFetchFailed = errors.New("all weather providers failed")
)

// Service orchestrates hourly forecast fetching, caching and aggregation.
type Service struct {
	store     Store
	providers []Provider
	pipeline  *Pipeline
	signals   []Signal
	log       *logrus.Entry
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithSignals sets the signals requested from providers. Temperature is always included.
func WithSignals(signals []Signal) ServiceOption {
	return func(s *Service) {
		s.signals = withTemperature(signals)
	}
}

// WithLogger sets the logger used by the service.
func WithLogger(log *logrus.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log.WithField("component", "weather-service")
	}
}

// NewService creates a new Service. Providers are tried in order.
func NewService(store Store, providers []Provider, pipeline *Pipeline, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		providers: providers,
		pipeline:  pipeline,
		signals:   AllSignals,
		log:       logrus.StandardLogger().WithField("component", "weather-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charts returns the aggregate bundle for loc over the given forecast window,
// serving raw readings from the store when they are still cached.
func (s *Service) Charts(ctx context.Context, loc Location, days int) (AggregateBundle, error) {
	readings, err := s.store.GetReadings(ctx, loc, days)
	if err != nil {
		s.log.WithFields(logrus.Fields{"location": loc.Key(), "days": days}).Debug("cache miss")
		readings, err = s.fetch(ctx, loc, days)
		if err != nil {
			return AggregateBundle{}, err
		}
	} else {
		s.log.WithFields(logrus.Fields{"location": loc.Key(), "days": days}).Debug("cache hit")
	}

	series, err := readings.Series()
	if err != nil {
		return AggregateBundle{}, fmt.Errorf("%s readings for %s: %w", readings.Provider, loc.Key(), err)
	}

	bundle, err := s.pipeline.Run(series, loc)
	if err != nil {
		return AggregateBundle{}, err
	}

	for _, sig := range bundle.Synthetic {
		s.log.WithFields(logrus.Fields{
			"location": loc.Key(),
			"provider": readings.Provider,
			"signal":   sig,
		}).Info("signal absent; using synthetic fallback")
	}

	return bundle, nil
}

// Refresh fetches fresh readings for loc and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context, loc Location, days int) error {
	_, err := s.fetch(ctx, loc, days)
	return err
}

// fetch asks each provider in turn and stores the first successful response.
func (s *Service) fetch(ctx context.Context, loc Location, days int) (HourlyReadings, error) {
	if len(s.providers) == 0 {
		return HourlyReadings{}, ErrNoProviders
	}

	req := ForecastRequest{Location: loc, Signals: s.signals, Days: days}
	var errs []error

	for _, p := range s.providers {
		log := s.log.WithFields(logrus.Fields{"location": loc.Key(), "provider": p.Name()})
		start := time.Now()

		readings, err := p.FetchHourly(ctx, req)
		if err != nil {
			log.WithError(err).Warn("provider fetch failed")
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		// Unusable readings count as this provider's failure and are never cached.
		if _, err := readings.Series(); err != nil {
			log.WithError(err).Warn("provider returned invalid readings")
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		if readings.Provider == "" {
			readings.Provider = p.Name()
		}
		if readings.FetchedAt.IsZero() {
			readings.FetchedAt = time.Now().UTC()
		}

		if err := s.store.SaveReadings(ctx, loc, days, readings); err != nil {
			log.WithError(err).Warn("failed to cache readings")
		}

		log.WithFields(logrus.Fields{
			"samples":  len(readings.Time),
			"duration": time.Since(start).String(),
		}).Info("fetched hourly forecast")
		return readings, nil
	}

	return HourlyReadings{}, fmt.Errorf("%w for %s: %w", ErrFetchFailed, loc.Key(), errors.Join(errs...))
}

func withTemperature(signals []Signal) []Signal {
	out := []Signal{SignalTemperature}
	for _, sig := range signals {
		if sig != SignalTemperature {
			out = append(out, sig)
		}
	}
	return out
}
