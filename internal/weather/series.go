package weather

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSeries is returned when sample timestamps are not strictly increasing.
var ErrInvalidSeries = errors.New("invalid sample series")

// Sample is one hourly reading. Optional signals that were not delivered are zero.
type Sample struct {
	Time          time.Time
	Temperature   float64
	Precipitation float64
	WindSpeed     float64
}

func (s Sample) value(sig Signal) float64 {
	switch sig {
	case SignalPrecipitation:
		return s.Precipitation
	case SignalWindSpeed:
		return s.WindSpeed
	default:
		return s.Temperature
	}
}

// SampleSeries is an immutable, time-ordered sequence of samples.
//
// A signal counts as present only when at least one sample carries a non-zero
// value for it. An all-zero column and a column that was never delivered are
// indistinguishable here.
type SampleSeries struct {
	samples []Sample
	present map[Signal]bool
}

// NewSampleSeries validates ordering and copies samples into a new series.
func NewSampleSeries(samples []Sample) (SampleSeries, error) {
	for i := 1; i < len(samples); i++ {
		if !samples[i].Time.After(samples[i-1].Time) {
			return SampleSeries{}, fmt.Errorf("%w: sample %d at %s does not follow %s",
				ErrInvalidSeries, i, samples[i].Time.Format(time.RFC3339), samples[i-1].Time.Format(time.RFC3339))
		}
	}

	owned := make([]Sample, len(samples))
	copy(owned, samples)

	present := make(map[Signal]bool, len(AllSignals))
	for _, s := range owned {
		for _, sig := range AllSignals {
			if s.value(sig) != 0 {
				present[sig] = true
			}
		}
	}

	return SampleSeries{samples: owned, present: present}, nil
}

// Len returns the number of samples.
func (s SampleSeries) Len() int {
	return len(s.samples)
}

// Samples returns a copy of the underlying samples.
func (s SampleSeries) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Present reports whether sig has at least one non-zero value.
func (s SampleSeries) Present(sig Signal) bool {
	return s.present[sig]
}

// Validate re-checks that timestamps strictly increase.
func (s SampleSeries) Validate() error {
	for i := 1; i < len(s.samples); i++ {
		if !s.samples[i].Time.After(s.samples[i-1].Time) {
			return fmt.Errorf("%w: sample %d is out of order", ErrInvalidSeries, i)
		}
	}
	return nil
}

// dayOf truncates t to midnight in its own location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayGroup is the run of consecutive samples sharing one calendar day.
type dayGroup struct {
	day     time.Time
	samples []Sample
}

// groupByDay partitions the series by calendar day in ascending order.
// Samples are ordered, so each day forms one contiguous run.
func (s SampleSeries) groupByDay() []dayGroup {
	var groups []dayGroup
	for i, smp := range s.samples {
		day := dayOf(smp.Time)
		if len(groups) == 0 || !groups[len(groups)-1].day.Equal(day) {
			groups = append(groups, dayGroup{day: day, samples: s.samples[i : i+1]})
			continue
		}
		g := &groups[len(groups)-1]
		g.samples = g.samples[:len(g.samples)+1]
	}
	return groups
}
