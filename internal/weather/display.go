package weather

import (
	"strconv"
	"strings"
)

// Unit is a display unit for today's temperature.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// Other returns the unit a toggle would switch to.
func (u Unit) Other() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Symbol returns the unit with its degree sign, e.g. "°C".
func (u Unit) Symbol() string {
	return "°" + string(u)
}

// DisplayState tracks how today's temperature is shown. It keeps only the
// rendered text: a toggle converts the value read back from that text, never
// the original sample, so repeated toggling compounds rounding error.
//
// The zero value shows nothing; Reset must be called when a fresh current
// result is rendered.
type DisplayState struct {
	unit Unit
	text string
}

// Reset shows tempK in Celsius. Every new current-weather result starts over
// in Celsius.
func (d *DisplayState) Reset(tempK float64) {
	d.unit = Celsius
	d.text = formatTemp(KelvinToCelsius(tempK), Celsius)
}

// Shown reports whether a value has been rendered yet.
func (d *DisplayState) Shown() bool {
	return d.text != ""
}

// Unit returns the unit currently displayed.
func (d *DisplayState) Unit() Unit {
	if d.unit == "" {
		return Celsius
	}
	return d.unit
}

// Text returns the rendered value, e.g. "23.4°C".
func (d *DisplayState) Text() string {
	return d.text
}

// Value returns the numeric part of the rendered value.
func (d *DisplayState) Value() (float64, bool) {
	return parseTemp(d.text)
}

// Label advertises the unit a toggle would switch to, e.g. "Show °F".
func (d *DisplayState) Label() string {
	return "Show " + d.Unit().Other().Symbol()
}

// Toggle flips the unit and re-derives the value from the displayed text.
// It does nothing when the displayed text holds no number.
func (d *DisplayState) Toggle() {
	num, ok := parseTemp(d.text)
	if !ok {
		return
	}
	next := d.Unit().Other()
	if next == Celsius {
		num = FahrenheitToCelsius(num)
	} else {
		num = CelsiusToFahrenheit(num)
	}
	d.unit = next
	d.text = formatTemp(num, next)
}

func formatTemp(v float64, u Unit) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + u.Symbol()
}

// parseTemp reads the leading number of a rendered value.
func parseTemp(text string) (float64, bool) {
	end := strings.Index(text, "°")
	if end < 0 {
		end = len(text)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text[:end]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
