package weather

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"freezing in C", KelvinToCelsius(273.15), 0},
		{"290K in C", KelvinToCelsius(290), 16.9},
		{"freezing in F", KelvinToFahrenheit(273.15), 32},
		{"290K in F", KelvinToFahrenheit(290), 62.3},
		{"5 m/s", MSToKmph(5), 18},
		{"1.5 m/s", MSToKmph(1.5), 5.4},
		{"100C", CelsiusToFahrenheit(100), 212},
		{"23.4C", CelsiusToFahrenheit(23.4), 74.1},
		{"74.1F", FahrenheitToCelsius(74.1), 23.4},
		{"-40F", FahrenheitToCelsius(-40), -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, 1e-9)
		})
	}
}

func TestCurrentDerivedValues(t *testing.T) {
	cur := Current{
		City:         "Lisbon",
		Country:      "PT",
		Condition:    "Drizzle",
		Icon:         "09d",
		TemperatureK: 314.16,
		WindSpeedMS:  2.5,
	}

	assert.Equal(t, "Lisbon, PT", cur.Title())
	assert.Equal(t, 41.0, cur.TempC())
	assert.True(t, cur.Extreme())
	assert.True(t, cur.Rainy())
	assert.Equal(t, 9.0, cur.WindKmph())
	assert.Equal(t, "https://openweathermap.org/img/wn/09d@2x.png", cur.IconURL())

	cur.Country = ""
	cur.Condition = "Clear"
	cur.TemperatureK = 313.15
	assert.Equal(t, "Lisbon", cur.Title())
	assert.False(t, cur.Rainy())
	assert.False(t, cur.Extreme(), "exactly 40°C is not extreme")
	assert.Empty(t, IconURL(""))
}

func TestRoundingFollowsStoredDecimal(t *testing.T) {
	// 0.15, 0.35 and 1.15 are stored just below the tie.
	assert.Equal(t, 0.1, round1(0.15))
	assert.Equal(t, 0.3, round1(0.35))
	assert.Equal(t, 1.1, round1(1.15))
	// exact ties round away from zero
	assert.Equal(t, 0.3, round1(0.25))
	assert.Equal(t, -0.3, round1(-0.25))
	assert.Equal(t, 16.9, round1(290-273.15))
}

func TestRoundingNeverYieldsNegativeZero(t *testing.T) {
	for _, v := range []float64{-0.04, -0.0001, math.Copysign(0, -1)} {
		got := round1(v)
		assert.Zero(t, got)
		assert.False(t, math.Signbit(got), "round1(%v) is -0", v)
	}
	assert.False(t, math.Signbit(KelvinToCelsius(273.12)))
}
