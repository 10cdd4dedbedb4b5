package weather

import (
	"context"
	"errors"
)

var (
	// ErrEmptyCity is returned for a blank city search.
	ErrEmptyCity = errors.New("empty city name")
	// ErrCityNotFound is returned when the upstream API does not know the city.
	ErrCityNotFound = errors.New("city not found")
	// ErrInvalidAPIKey is returned when the upstream API rejects the key.
	ErrInvalidAPIKey = errors.New("invalid api key")
	// ErrCurrentWeather wraps any other current-weather failure.
	ErrCurrentWeather = errors.New("current weather unavailable")
	// ErrForecast wraps any forecast failure.
	ErrForecast = errors.New("forecast unavailable")
)

// Client abstracts the upstream weather API (OpenWeatherMap).
type Client interface {
	CurrentByCity(ctx context.Context, city string) (Current, error)
	CurrentByCoords(ctx context.Context, at Coordinates) (Current, error)
	Forecast(ctx context.Context, at Coordinates) ([]Sample, error)
}

// PlaceNamer resolves a city name for coordinates the upstream API returned
// unnamed.
type PlaceNamer interface {
	CityAt(ctx context.Context, at Coordinates) (string, error)
}

// RecentsStore persists encoded ledgers by key. Load returns
// store.ErrNotFound for a key that was never saved.
type RecentsStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, raw []byte) error
}

// UserMessage renders a lookup error as the short status text shown to the
// user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCity):
		return "Please enter a city name."
	case errors.Is(err, ErrForecast):
		return "Error fetching forecast."
	case errors.Is(err, ErrCityNotFound):
		return "City not found."
	case errors.Is(err, ErrInvalidAPIKey):
		return "Invalid API key."
	case errors.Is(err, ErrCurrentWeather):
		return "Error fetching current weather."
	default:
		return "Failed to fetch weather."
	}
}
