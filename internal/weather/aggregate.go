package weather

import (
	"github.com/i474232898/weather-charts/internal/common"
)

// Resample collapses the temperature signal into one OHLC record per calendar
// day. Days without samples produce no record; values are rounded to 2dp.
func Resample(series SampleSeries) []OhlcRecord {
	groups := series.groupByDay()
	records := make([]OhlcRecord, 0, len(groups))

	for _, g := range groups {
		open := g.samples[0].Temperature
		closing := g.samples[len(g.samples)-1].Temperature
		high, low := open, open
		for _, s := range g.samples[1:] {
			if s.Temperature > high {
				high = s.Temperature
			}
			if s.Temperature < low {
				low = s.Temperature
			}
		}

		records = append(records, OhlcRecord{
			Date:  g.day,
			Open:  common.Round(open, 2),
			High:  common.Round(high, 2),
			Low:   common.Round(low, 2),
			Close: common.Round(closing, 2),
		})
	}

	return records
}

// DailyHighs derives the per-day highest value distribution from OHLC records.
func DailyHighs(records []OhlcRecord) []DailyHigh {
	highs := make([]DailyHigh, 0, len(records))
	for _, r := range records {
		highs = append(highs, DailyHigh{
			Date:  r.Date,
			Label: r.Date.Format("Jan 02"),
			Value: r.High,
		})
	}
	return highs
}
