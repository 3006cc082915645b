package scheduler

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-charts/internal/weather"
)

type recordingRefresher struct {
	mu    sync.Mutex
	calls map[string]int
	days  int
	fail  string
}

func (r *recordingRefresher) Refresh(ctx context.Context, loc weather.Location, days int) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("refresh without deadline")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[loc.Key()]++
	r.days = days
	if loc.Key() == r.fail {
		return errors.New("provider down")
	}
	return nil
}

func (r *recordingRefresher) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[key]
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var locs = []weather.Location{{Code: "GB"}, {Code: "FR"}}

func TestRunOnceRefreshesEveryLocation(t *testing.T) {
	r := &recordingRefresher{fail: "FR"}
	s := New(Config{Locations: locs, Days: 16}, r, quietLogger())

	s.RunOnce(context.Background())

	assert.Equal(t, 1, r.count("GB"))
	assert.Equal(t, 1, r.count("FR"))
	assert.Equal(t, 16, r.days)
}

func TestStartRunsImmediately(t *testing.T) {
	r := &recordingRefresher{}
	s := New(Config{Locations: locs, Days: 3, Interval: time.Hour}, r, quietLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return r.count("GB") == 1 && r.count("FR") == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStartWithoutScheduleOrLocations(t *testing.T) {
	r := &recordingRefresher{}

	require.NoError(t, New(Config{Days: 1, Interval: time.Minute}, r, quietLogger()).Start())
	require.NoError(t, New(Config{Locations: locs, Days: 1}, r, quietLogger()).Start())

	assert.Equal(t, 0, r.count("GB"))
}

func TestStartRejectsBadCron(t *testing.T) {
	s := New(Config{Locations: locs, Days: 1, Cron: "not a cron"}, &recordingRefresher{}, quietLogger())
	assert.Error(t, s.Start())
}
