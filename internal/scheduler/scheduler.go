package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-charts/internal/weather"
)

// refreshTimeout bounds one location's fetch within a run.
const refreshTimeout = 30 * time.Second

// Refresher re-fetches and caches readings for a location.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location, days int) error
}

// Config selects when and what the scheduler refreshes.
// Cron takes precedence over Interval; neither set disables refreshing.
type Config struct {
	Locations []weather.Location
	Days      int
	Interval  time.Duration
	Cron      string
}

// Scheduler periodically warms the readings cache for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	cfg       Config
	log       *logrus.Entry
}

// New creates a new Scheduler.
func New(cfg Config, refresher Refresher, logger *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		cfg:       cfg,
		log:       logger.WithField("component", "scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.cfg.Locations) == 0 {
		s.log.Info("no locations configured; nothing to schedule")
		return nil
	}

	var job *gocron.Scheduler
	switch {
	case s.cfg.Cron != "":
		job = s.scheduler.Cron(s.cfg.Cron).StartImmediately()
	case s.cfg.Interval > 0:
		job = s.scheduler.Every(s.cfg.Interval)
	default:
		s.log.Info("refresh disabled")
		return nil
	}

	if _, err := job.SingletonMode().Do(s.RunOnce, context.Background()); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every configured location concurrently.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.log.WithField("locations", len(s.cfg.Locations)).Info("running cache refresh job")
	start := time.Now()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, loc := range s.cfg.Locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			defer cancel()

			if err := s.refresher.Refresh(ctx, loc, s.cfg.Days); err != nil {
				s.log.WithError(err).WithField("location", loc.Key()).Warn("refresh failed")
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.log.WithFields(logrus.Fields{
		"failed":   failed,
		"duration": time.Since(start).String(),
	}).Info("completed cache refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
