package providers

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

const currentBody = `{
  "name": "Paris",
  "coord": {"lat": 48.8534, "lon": 2.3488},
  "sys": {"country": "FR"},
  "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
  "main": {"temp": 290.2, "humidity": 81},
  "wind": {"speed": 4.1}
}`

const forecastBody = `{
  "list": [
    {"dt_txt": "2025-09-15 12:00:00", "main": {"temp": 291, "humidity": 60}, "wind": {"speed": 3}, "weather": [{"main": "Clouds", "icon": "04d"}]},
    {"dt_txt": "2025-09-15 15:00:00", "main": {"humidity": 60}, "wind": {"speed": 3}, "weather": []}
  ]
}`

func newOWMServer(t *testing.T, handler http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL+"/", nil)
}

func TestCurrentByCity(t *testing.T) {
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(currentBody))
	})

	cur, err := p.CurrentByCity(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", cur.City)
	assert.Equal(t, "FR", cur.Country)
	assert.Equal(t, weather.Coordinates{Lat: 48.8534, Lon: 2.3488}, cur.Coord)
	assert.Equal(t, "light rain", cur.Description)
	assert.Equal(t, "Rain", cur.Condition)
	assert.Equal(t, "10d", cur.Icon)
	assert.Equal(t, 290.2, cur.TemperatureK)
	assert.Equal(t, 81.0, cur.HumidityPct)
	assert.Equal(t, 4.1, cur.WindSpeedMS)
}

func TestCurrentByCoordsQuery(t *testing.T) {
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-33.87", r.URL.Query().Get("lat"))
		assert.Equal(t, "151.21", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(currentBody))
	})

	_, err := p.CurrentByCoords(context.Background(), weather.Coordinates{Lat: -33.87, Lon: 151.21})
	require.NoError(t, err)
}

func TestCurrentMissingTemperature(t *testing.T) {
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Nowhere", "main": {}}`))
	})

	_, err := p.CurrentByCity(context.Background(), "Nowhere")
	assert.Error(t, err)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, weather.ErrCityNotFound},
		{"unauthorized", http.StatusUnauthorized, weather.ErrInvalidAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := p.CurrentByCity(context.Background(), "Atlantis")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad request", func(t *testing.T) {
		p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		_, err := p.CurrentByCity(context.Background(), "x")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Code)
	})
}

func TestServerErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := p.CurrentByCity(context.Background(), "Paris")
	require.Error(t, err)
	assert.ErrorIs(t, err, errServerError)
	assert.Equal(t, int32(1), calls.Load())
}

func TestForecastKeepsIncompleteSamples(t *testing.T) {
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		_, _ = w.Write([]byte(forecastBody))
	})

	samples, err := p.Forecast(context.Background(), weather.Coordinates{Lat: 48.85, Lon: 2.35})
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "2025-09-15 12:00:00", samples[0].Timestamp)
	assert.Equal(t, "Clouds", samples[0].Condition)
	assert.True(t, samples[0].Usable())

	assert.True(t, math.IsNaN(samples[1].TemperatureK))
	assert.False(t, samples[1].Usable())

	daily := weather.Aggregate(samples, 5)
	require.Len(t, daily, 1)
	assert.Equal(t, 17.9, daily[0].AvgTempC)
}

func TestMissingAPIKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "", "", nil)
	_, err := p.CurrentByCity(context.Background(), "Paris")
	assert.Error(t, err)
}

func TestInvalidJSON(t *testing.T) {
	p := newOWMServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list": [`))
	})
	_, err := p.Forecast(context.Background(), weather.Coordinates{})
	assert.Error(t, err)
}
