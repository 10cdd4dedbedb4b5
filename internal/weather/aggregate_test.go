package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daySamples(date string, hours []int, tempK, humidity, wind float64) []Sample {
	out := make([]Sample, 0, len(hours))
	for _, h := range hours {
		out = append(out, Sample{
			Timestamp:    fmt.Sprintf("%s %02d:00:00", date, h),
			TemperatureK: tempK,
			HumidityPct:  humidity,
			WindSpeedMS:  wind,
			Condition:    fmt.Sprintf("cond-%02d", h),
			Icon:         fmt.Sprintf("%02dd", h),
		})
	}
	return out
}

func fiveDays() []Sample {
	var samples []Sample
	for d := 15; d < 20; d++ {
		samples = append(samples, daySamples(fmt.Sprintf("2025-09-%02d", d),
			[]int{0, 3, 6, 9, 12, 15, 18, 21}, 290, 50, 5)...)
	}
	return samples
}

func TestAggregateUniformFiveDays(t *testing.T) {
	samples := fiveDays()
	require.Len(t, samples, 40)

	daily := Aggregate(samples, 5)
	require.Len(t, daily, 5)

	for i, d := range daily {
		assert.Equal(t, fmt.Sprintf("2025-09-%02d", 15+i), d.Date)
		assert.Equal(t, 16.9, d.AvgTempC)
		assert.Equal(t, 50, d.AvgHumidityPct)
		assert.Equal(t, 18.0, d.MaxWindKmph)
		assert.Equal(t, "cond-12", d.Condition)
		assert.Equal(t, "https://openweathermap.org/img/wn/12d@2x.png", d.IconURL)
	}
	assert.Equal(t, "Mon, Sep 15", daily[0].Label)
}

func TestAggregateFahrenheitConsistent(t *testing.T) {
	samples := append(
		daySamples("2025-09-15", []int{0, 12}, 281.45, 40, 2),
		daySamples("2025-09-16", []int{3, 9, 21}, 301.75, 70, 7.3)...,
	)
	for _, d := range Aggregate(samples, 5) {
		assert.InDelta(t, d.AvgTempC*9/5+32, d.AvgTempF, 0.1+1e-9, d.Date)
	}
}

func TestAggregateMaxWind(t *testing.T) {
	samples := daySamples("2025-09-15", []int{0, 6, 12}, 290, 50, 1)
	samples[1].WindSpeedMS = 7.77
	samples[2].WindSpeedMS = 3

	daily := Aggregate(samples, 5)
	require.Len(t, daily, 1)
	assert.Equal(t, 28.0, daily[0].MaxWindKmph)
}

func TestAggregateAverages(t *testing.T) {
	samples := []Sample{
		{Timestamp: "2025-09-15 09:00:00", TemperatureK: 283.15, HumidityPct: 41, WindSpeedMS: 1},
		{Timestamp: "2025-09-15 12:00:00", TemperatureK: 293.15, HumidityPct: 60, WindSpeedMS: 2},
	}
	daily := Aggregate(samples, 5)
	require.Len(t, daily, 1)
	assert.Equal(t, 15.0, daily[0].AvgTempC)
	assert.Equal(t, 59.0, daily[0].AvgTempF)
	assert.Equal(t, 51, daily[0].AvgHumidityPct)
}

func TestAggregateNeverExceedsMaxDays(t *testing.T) {
	var samples []Sample
	for d := 1; d <= 9; d++ {
		samples = append(samples, daySamples(fmt.Sprintf("2025-10-%02d", d), []int{0, 12}, 285, 50, 3)...)
	}
	for maxDays := 1; maxDays <= 9; maxDays++ {
		assert.Len(t, Aggregate(samples, maxDays), maxDays)
	}
	assert.Empty(t, Aggregate(samples, 0))
	assert.Empty(t, Aggregate(samples, -2))
}

func TestAggregateKeepsFirstSeenOrder(t *testing.T) {
	samples := append(
		daySamples("2025-09-17", []int{0}, 290, 50, 5),
		daySamples("2025-09-15", []int{0}, 290, 50, 5)...,
	)
	daily := Aggregate(samples, 5)
	require.Len(t, daily, 2)
	assert.Equal(t, "2025-09-17", daily[0].Date)
	assert.Equal(t, "2025-09-15", daily[1].Date)
}

func TestAggregateSkipsMalformedSamples(t *testing.T) {
	samples := daySamples("2025-09-15", []int{0, 12}, 290, 50, 5)
	samples = append(samples,
		Sample{Timestamp: "2025-09-15 15:00:00", TemperatureK: math.NaN(), HumidityPct: 99, WindSpeedMS: 40},
		Sample{Timestamp: "", TemperatureK: 500, HumidityPct: 1, WindSpeedMS: 1},
		Sample{Timestamp: "2025-09-16 00:00:00", TemperatureK: math.Inf(1), HumidityPct: 50, WindSpeedMS: 5},
	)

	daily := Aggregate(samples, 5)
	require.Len(t, daily, 1, "a date with no usable samples gets no summary")
	assert.Equal(t, 16.9, daily[0].AvgTempC)
	assert.Equal(t, 50, daily[0].AvgHumidityPct)
	assert.Equal(t, 18.0, daily[0].MaxWindKmph)
}

func TestAggregateEmpty(t *testing.T) {
	daily := Aggregate(nil, 5)
	assert.NotNil(t, daily)
	assert.Empty(t, daily)
}

func TestAggregateLabelFallback(t *testing.T) {
	daily := Aggregate([]Sample{{Timestamp: "someday noon", TemperatureK: 290}}, 5)
	require.Len(t, daily, 1)
	assert.Equal(t, "someday", daily[0].Label)
}

func TestRepresentative(t *testing.T) {
	t.Run("midday", func(t *testing.T) {
		pick, ok := Representative(daySamples("2025-09-15", []int{0, 6, 12, 18}, 290, 50, 5))
		require.True(t, ok)
		assert.Equal(t, "2025-09-15 12:00:00", pick.Timestamp)
	})

	t.Run("middle index without midday", func(t *testing.T) {
		pick, ok := Representative(daySamples("2025-09-15", []int{0, 6, 18}, 290, 50, 5))
		require.True(t, ok)
		assert.Equal(t, "2025-09-15 06:00:00", pick.Timestamp)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := Representative(nil)
		assert.False(t, ok)
	})
}

func TestAggregateJustBelowFreezing(t *testing.T) {
	daily := Aggregate(daySamples("2025-01-10", []int{12}, 273.12, 80, 1), 5)
	require.Len(t, daily, 1)
	assert.False(t, math.Signbit(daily[0].AvgTempC))

	raw, err := json.Marshal(daily[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"avgTemperatureC":0,`)
}

// eightDays builds eight consecutive dates starting 2025-01-01; the dates
// listed in broken carry only non-finite samples.
func eightDays(broken ...int) []Sample {
	var samples []Sample
	for d := 1; d <= 8; d++ {
		day := daySamples(fmt.Sprintf("2025-01-%02d", d), []int{0, 12}, 280, 60, 4)
		for _, b := range broken {
			if b == d {
				for i := range day {
					day[i].TemperatureK = math.NaN()
				}
			}
		}
		samples = append(samples, day...)
	}
	return samples
}

func dates(daily []DailySummary) []string {
	out := make([]string, 0, len(daily))
	for _, d := range daily {
		out = append(out, d.Date)
	}
	return out
}

func TestAggregateDateWindow(t *testing.T) {
	t.Run("skipped first date does not use up the limit", func(t *testing.T) {
		daily := Aggregate(eightDays(1), 5)
		assert.Equal(t, []string{
			"2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06",
		}, dates(daily))
	})

	t.Run("only the first maxDays+1 dates are considered", func(t *testing.T) {
		daily := Aggregate(eightDays(1, 2), 5)
		assert.Equal(t, []string{
			"2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06",
		}, dates(daily))
	})
}
