package weather

import (
	"math"
	"math/rand/v2"

	"github.com/i474232898/weather-charts/internal/common"
)

const (
	jitterSpread = 0.25
	sizeScale    = 1.5
	sizeMin      = 8.0
	sizeMax      = 20.0
)

// PCG stream selectors; the two streams share a seed but never overlap.
const (
	choiceStream uint64 = 1
	jitterStream uint64 = 2
)

// BuildJitterSeries averages sig per calendar day and lays the days out as
// scattered but reproducible plot coordinates derived from locationSeed.
// When sig is absent the daily values are synthesized from the spread of
// each day's temperatures.
func BuildJitterSeries(series SampleSeries, sig Signal, locationSeed float64, fb SyntheticFallback) []JitterPoint {
	groups := series.groupByDay()
	n := len(groups)
	if n == 0 {
		return []JitterPoint{}
	}

	raw := make([]float64, n)
	if series.Present(sig) {
		for i, g := range groups {
			vals := make([]float64, len(g.samples))
			for j, s := range g.samples {
				vals[j] = s.value(sig)
			}
			raw[i] = common.Mean(vals)
		}
	} else {
		basis := make([]DailyTemperature, n)
		for i, g := range groups {
			temps := make([]float64, len(g.samples))
			for j, s := range g.samples {
				temps[j] = s.Temperature
			}
			basis[i] = DailyTemperature{Mean: common.Mean(temps), StdDev: common.SampleStdDev(temps)}
		}
		raw = fb.GenerateDaily(basis)
	}

	seed := uint64(math.Floor(math.Abs(locationSeed)))
	choice := rand.New(rand.NewPCG(seed, choiceStream))
	jitter := rand.New(rand.NewPCG(seed, jitterStream))

	yBase := make([]float64, n)
	for i := range yBase {
		yBase[i] = raw[choice.IntN(n)]
	}
	xJitter := uniformSlice(jitter, n, -jitterSpread, jitterSpread)
	yJitter := uniformSlice(jitter, n, -jitterSpread, jitterSpread)

	points := make([]JitterPoint, n)
	for i, g := range groups {
		points[i] = JitterPoint{
			Day:      g.day,
			RawValue: raw[i],
			X:        float64(i) * (1 + xJitter[i]),
			Y:        yBase[i] * (1 + yJitter[i]),
			Size:     common.Clamp(raw[i]*sizeScale, sizeMin, sizeMax),
		}
	}
	return points
}

func uniformSlice(r *rand.Rand, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + r.Float64()*(hi-lo)
	}
	return out
}
