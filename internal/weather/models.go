package weather

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	// MaxRecents bounds the recent-searches ledger.
	MaxRecents = 6

	// ForecastDays is the default number of daily summaries built from a forecast.
	ForecastDays = 5

	// ExtremeTempC is the Celsius threshold above which a lookup raises an alert.
	ExtremeTempC = 40.0

	// TimestampLayout is the literal form of forecast sample timestamps.
	TimestampLayout = "2006-01-02 15:04:05"

	// MiddayMarker identifies the preferred representative sample of a day.
	MiddayMarker = "12:00:00"

	iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"
)

var rainPattern = regexp.MustCompile(`(?i)rain|drizzle`)

// Coordinates is a latitude/longitude pair as resolved by the upstream API.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Sample is one 3-hourly forecast observation. Timestamps are kept as the
// source text; they are never timezone-normalized.
type Sample struct {
	Timestamp    string  `json:"timestamp"`
	TemperatureK float64 `json:"temperatureK"`
	HumidityPct  float64 `json:"humidityPercent"`
	WindSpeedMS  float64 `json:"windSpeed"`
	Condition    string  `json:"condition"`
	Icon         string  `json:"icon"`
}

// DateKey returns the calendar-date part of the timestamp, or "" when the
// timestamp carries none.
func (s Sample) DateKey() string {
	date, _, _ := strings.Cut(strings.TrimSpace(s.Timestamp), " ")
	return date
}

// TimeOfDay returns the part of the timestamp after the date.
func (s Sample) TimeOfDay() string {
	_, clock, _ := strings.Cut(strings.TrimSpace(s.Timestamp), " ")
	return clock
}

// Usable reports whether every numeric field of the sample is finite.
func (s Sample) Usable() bool {
	return finite(s.TemperatureK) && finite(s.HumidityPct) && finite(s.WindSpeedMS)
}

// DailySummary aggregates the samples of one calendar date.
type DailySummary struct {
	Date           string  `json:"date"`
	Label          string  `json:"label"`
	AvgTempC       float64 `json:"avgTemperatureC"`
	AvgTempF       float64 `json:"avgTemperatureF"`
	Icon           string  `json:"icon"`
	IconURL        string  `json:"iconUrl"`
	Condition      string  `json:"condition"`
	AvgHumidityPct int     `json:"avgHumidityPercent"`
	MaxWindKmph    float64 `json:"maxWindKmph"`
}

// Current is the current-weather payload for a resolved place.
type Current struct {
	City         string      `json:"city"`
	Country      string      `json:"country,omitempty"`
	Coord        Coordinates `json:"coord"`
	Description  string      `json:"description"`
	Condition    string      `json:"condition"`
	Icon         string      `json:"icon,omitempty"`
	TemperatureK float64     `json:"temperatureK"`
	HumidityPct  float64     `json:"humidityPercent"`
	WindSpeedMS  float64     `json:"windSpeed"`
}

// Title is the heading shown for the place, e.g. "Paris, FR".
func (c Current) Title() string {
	if c.Country == "" {
		return c.City
	}
	return c.City + ", " + c.Country
}

// TempC returns the current temperature in Celsius.
func (c Current) TempC() float64 { return KelvinToCelsius(c.TemperatureK) }

// TempF returns the current temperature in Fahrenheit.
func (c Current) TempF() float64 { return KelvinToFahrenheit(c.TemperatureK) }

// WindKmph returns the current wind speed in km/h.
func (c Current) WindKmph() float64 { return MSToKmph(c.WindSpeedMS) }

// Rainy reports whether the condition category is rain or drizzle.
func (c Current) Rainy() bool { return rainPattern.MatchString(c.Condition) }

// Extreme reports whether the temperature is above ExtremeTempC.
func (c Current) Extreme() bool { return c.TempC() > ExtremeTempC }

// IconURL returns the illustration URL for the current condition.
func (c Current) IconURL() string { return IconURL(c.Icon) }

// Report is the outcome of one successful lookup.
type Report struct {
	Current Current        `json:"current"`
	Daily   []DailySummary `json:"daily"`
}

// IconURL maps an opaque icon token to its illustration URL.
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, icon)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
