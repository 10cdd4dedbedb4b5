package weather

import (
	"math"
	"math/big"
)

const kelvinOffset = 273.15

// KelvinToCelsius converts an absolute temperature, rounded to 1 decimal.
func KelvinToCelsius(k float64) float64 {
	return round1(k - kelvinOffset)
}

// KelvinToFahrenheit converts an absolute temperature, rounded to 1 decimal.
func KelvinToFahrenheit(k float64) float64 {
	return round1((k-kelvinOffset)*9/5 + 32)
}

// MSToKmph converts meters/second to km/h, rounded to 1 decimal.
func MSToKmph(v float64) float64 {
	return round1(v * 3.6)
}

// CelsiusToFahrenheit converts a displayed Celsius value. The input is
// already rounded, so chaining it with FahrenheitToCelsius is lossy.
func CelsiusToFahrenheit(c float64) float64 {
	return round1(c*9/5 + 32)
}

// FahrenheitToCelsius converts a displayed Fahrenheit value.
func FahrenheitToCelsius(f float64) float64 {
	return round1((f - 32) * 5 / 9)
}

// round1 rounds the exact decimal expansion of v to one place, ties away
// from zero, so 0.15 (stored as 0.1499...) gives 0.1. Zero is never
// negative.
func round1(v float64) float64 {
	if !finite(v) || math.Abs(v) > 1e15 {
		return v
	}
	x := new(big.Float).SetPrec(128).SetFloat64(v)
	neg := x.Signbit()
	x.Abs(x)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))

	n, _ := x.Int(nil)
	if n.Sign() == 0 {
		return 0
	}
	r := float64(n.Int64()) / 10
	if neg {
		return -r
	}
	return r
}
