package weather

import "fmt"

// BuildProfile averages sig per hour of day across all days of the series and
// closes the 24 buckets into a 25 point loop. When sig is absent the buckets
// are synthesized from hourly mean temperatures instead.
func BuildProfile(series SampleSeries, sig Signal, fb SyntheticFallback) CyclicProfile {
	var values [HoursPerDay]float64

	if series.Present(sig) {
		values, _ = hourlyMeans(series, sig)
	} else {
		means, counts := hourlyMeans(series, SignalTemperature)
		temps := make(map[int]float64, HoursPerDay)
		for h := 0; h < HoursPerDay; h++ {
			if counts[h] > 0 {
				temps[h] = means[h]
			}
		}
		values = fb.GenerateHourly(temps)
	}

	profile := make(CyclicProfile, 0, HoursPerDay+1)
	for h := 0; h < HoursPerDay; h++ {
		profile = append(profile, ProfilePoint{Label: hourLabel(h), Value: values[h]})
	}
	return append(profile, profile[0])
}

// hourlyMeans returns the mean of sig per hour bucket along with the number
// of contributing samples. Empty buckets are 0.
func hourlyMeans(series SampleSeries, sig Signal) (means [HoursPerDay]float64, counts [HoursPerDay]int) {
	var sums [HoursPerDay]float64
	for _, s := range series.samples {
		h := s.Time.Hour()
		sums[h] += s.value(sig)
		counts[h]++
	}

	for h := range means {
		if counts[h] > 0 {
			means[h] = sums[h] / float64(counts[h])
		}
	}
	return means, counts
}

func hourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
