package weather

import (
	"math"
	"math/rand/v2"

	"github.com/i474232898/weather-charts/internal/common"
)

// DefaultFallbackSeed seeds the synthetic generator unless configured otherwise.
const DefaultFallbackSeed = 42

// HoursPerDay is the number of buckets in a cyclic profile.
const HoursPerDay = 24

const (
	hourlyBand    = 5.0
	dailyStdScale = 3.0
	dailyDefault  = 5.0
	dailyNoiseLo  = -3.0
	dailyNoiseHi  = 8.0
	dailyMax      = 25.0
)

// DailyTemperature is the per-day basis for a synthetic daily value.
// StdDev is NaN when the day holds fewer than two samples.
type DailyTemperature struct {
	Mean   float64
	StdDev float64
}

// SyntheticFallback produces placeholder values for a missing signal from the
// temperature signal. Output depends only on its seed and its inputs.
type SyntheticFallback struct {
	seed uint64
}

// NewSyntheticFallback returns a generator with a fixed seed.
func NewSyntheticFallback(seed uint64) SyntheticFallback {
	return SyntheticFallback{seed: seed}
}

func (f SyntheticFallback) rng() *rand.Rand {
	return rand.New(rand.NewPCG(f.seed, f.seed))
}

// GenerateHourly maps hour-of-day mean temperatures onto synthetic values in
// [0, 6]: colder hours score higher on a 0-5 band, plus up to 1 of noise.
// Hours missing from tempByHour sit at the middle of the band.
func (f SyntheticFallback) GenerateHourly(tempByHour map[int]float64) [HoursPerDay]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for h, t := range tempByHour {
		if h < 0 || h >= HoursPerDay {
			continue
		}
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	span := hi - lo
	if math.IsInf(lo, 0) || span == 0 {
		span = 1
	}

	r := f.rng()
	var out [HoursPerDay]float64
	for h := 0; h < HoursPerDay; h++ {
		normalized := 0.5
		if t, ok := tempByHour[h]; ok {
			normalized = 1 - (t-lo)/span
		}
		out[h] = normalized*hourlyBand + r.Float64()
	}
	return out
}

// GenerateDaily maps per-day temperature spread onto synthetic values in
// [0, 25]. The result is aligned with days.
func (f SyntheticFallback) GenerateDaily(days []DailyTemperature) []float64 {
	r := f.rng()
	out := make([]float64, len(days))
	for i, d := range days {
		base := dailyDefault
		if !math.IsNaN(d.StdDev) {
			base = d.StdDev * dailyStdScale
		}
		noise := dailyNoiseLo + r.Float64()*(dailyNoiseHi-dailyNoiseLo)
		out[i] = common.Clamp(base+noise, 0, dailyMax)
	}
	return out
}
