package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResample_TwoDays(t *testing.T) {
	temps := make([]float64, 48)
	for i := range temps {
		temps[i] = 10 + float64(i%4)*0.5
	}
	temps[2] = 9
	temps[13] = 15
	temps[24] = 20.456
	temps[47] = 18.004

	records := Resample(mustSeries(t, hourly(temps, nil)))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, day0, first.Date)
	assert.Equal(t, temps[0], first.Open)
	assert.Equal(t, 15.0, first.High)
	assert.Equal(t, 9.0, first.Low)
	assert.Equal(t, temps[23], first.Close)

	second := records[1]
	assert.Equal(t, day0.AddDate(0, 0, 1), second.Date)
	assert.Equal(t, 20.46, second.Open)
	assert.Equal(t, 20.46, second.High)
	assert.Equal(t, 10.0, second.Low)
	assert.Equal(t, 18.0, second.Close)
}

func TestResample_Invariants(t *testing.T) {
	temps := []float64{3.3, -1.2, 7.8, 0, 4.4, 12.1, -5.5, 6.6, 2.2, 8.9}
	samples := hourly(temps, nil)
	// Spread the samples across several days with gaps.
	for i := range samples {
		samples[i].Time = day0.Add(time.Duration(i*7) * time.Hour)
	}

	records := Resample(mustSeries(t, samples))
	days := map[time.Time]bool{}
	for _, s := range samples {
		days[dayOf(s.Time)] = true
	}
	assert.LessOrEqual(t, len(records), len(days))

	for i, r := range records {
		assert.LessOrEqual(t, r.Low, r.High)
		assert.LessOrEqual(t, r.Low, r.Open)
		assert.LessOrEqual(t, r.Open, r.High)
		assert.LessOrEqual(t, r.Low, r.Close)
		assert.LessOrEqual(t, r.Close, r.High)
		if i > 0 {
			assert.True(t, r.Date.After(records[i-1].Date))
		}
	}
}

func TestResample_SkipsEmptyDays(t *testing.T) {
	samples := []Sample{
		{Time: day0.Add(5 * time.Hour), Temperature: 1},
		{Time: day0.AddDate(0, 0, 3).Add(2 * time.Hour), Temperature: 2},
	}

	records := Resample(mustSeries(t, samples))
	require.Len(t, records, 2)
	assert.Equal(t, day0, records[0].Date)
	assert.Equal(t, day0.AddDate(0, 0, 3), records[1].Date)
	assert.Equal(t, OhlcRecord{Date: records[1].Date, Open: 2, High: 2, Low: 2, Close: 2}, records[1])
}

func TestResample_UsesSeriesOwnDayBoundary(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*3600)
	samples := []Sample{
		{Time: time.Date(2025, 3, 1, 22, 0, 0, 0, zone), Temperature: 1},
		{Time: time.Date(2025, 3, 1, 23, 0, 0, 0, zone), Temperature: 2},
		{Time: time.Date(2025, 3, 2, 0, 0, 0, 0, zone), Temperature: 3},
	}

	records := Resample(mustSeries(t, samples))
	require.Len(t, records, 2)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, zone), records[0].Date)
	assert.Equal(t, 2.0, records[0].Close)
}

func TestResample_Empty(t *testing.T) {
	records := Resample(mustSeries(t, nil))
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDailyHighs(t *testing.T) {
	records := []OhlcRecord{
		{Date: day0, High: 14.5},
		{Date: day0.AddDate(0, 0, 1), High: 16},
	}

	highs := DailyHighs(records)
	require.Len(t, highs, 2)
	assert.Equal(t, "Mar 01", highs[0].Label)
	assert.Equal(t, 14.5, highs[0].Value)
	assert.Equal(t, "Mar 02", highs[1].Label)
}
