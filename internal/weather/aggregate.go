package weather

import (
	"math"
	"time"
)

const labelLayout = "Mon, Jan 2"

// Aggregate reduces an ordered series of forecast samples into at most
// maxDays daily summaries. Dates keep the order in which they first appear;
// the input is not sorted. Only the first maxDays+1 dates are considered, so a
// partial leading day can be skipped without losing the last full day.
//
// Temperature and humidity are averaged and wind is maximised over every
// usable sample of the date. Icon, condition and label come from a single
// representative sample. Samples with non-finite numbers are ignored; a date
// left without usable samples produces no summary.
func Aggregate(samples []Sample, maxDays int) []DailySummary {
	if maxDays <= 0 || len(samples) == 0 {
		return []DailySummary{}
	}

	var order []string
	byDate := make(map[string][]Sample)
	for _, s := range samples {
		key := s.DateKey()
		if key == "" {
			continue
		}
		if _, seen := byDate[key]; !seen {
			order = append(order, key)
			byDate[key] = nil
		}
		if s.Usable() {
			byDate[key] = append(byDate[key], s)
		}
	}

	if len(order) > maxDays+1 {
		order = order[:maxDays+1]
	}

	daily := make([]DailySummary, 0, maxDays)
	for _, date := range order {
		if len(daily) >= maxDays {
			break
		}
		summary, ok := summarize(date, byDate[date])
		if !ok {
			continue
		}
		daily = append(daily, summary)
	}
	return daily
}

// Representative picks the sample supplying a day's icon, condition and
// label: the midday reading when present, otherwise the middle one.
func Representative(samples []Sample) (Sample, bool) {
	if len(samples) == 0 {
		return Sample{}, false
	}
	for _, s := range samples {
		if s.TimeOfDay() == MiddayMarker {
			return s, true
		}
	}
	return samples[len(samples)/2], true
}

func summarize(date string, samples []Sample) (DailySummary, bool) {
	pick, ok := Representative(samples)
	if !ok {
		return DailySummary{}, false
	}

	var (
		sumTemp     float64
		sumHumidity float64
		maxWind     = math.Inf(-1)
	)
	for _, s := range samples {
		sumTemp += s.TemperatureK
		sumHumidity += s.HumidityPct
		if s.WindSpeedMS > maxWind {
			maxWind = s.WindSpeedMS
		}
	}

	n := float64(len(samples))
	avgTempK := sumTemp / n

	return DailySummary{
		Date:           date,
		Label:          formatLabel(pick.Timestamp, date),
		AvgTempC:       KelvinToCelsius(avgTempK),
		AvgTempF:       KelvinToFahrenheit(avgTempK),
		Icon:           pick.Icon,
		IconURL:        IconURL(pick.Icon),
		Condition:      pick.Condition,
		AvgHumidityPct: int(math.Round(sumHumidity / n)),
		MaxWindKmph:    MSToKmph(maxWind),
	}, true
}

// formatLabel renders e.g. "Mon, Sep 15". Unparseable timestamps fall back to
// the raw date key.
func formatLabel(ts, date string) string {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		if t, err = time.Parse(time.DateOnly, date); err != nil {
			return date
		}
	}
	return t.Format(labelLayout)
}
