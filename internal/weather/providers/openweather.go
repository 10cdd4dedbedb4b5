package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements weather.Client for OpenWeatherMap. It asks
// for the API's default units, so temperatures arrive in Kelvin.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Client = (*OpenWeatherProvider)(nil)

// NewOpenWeatherProvider creates a provider. An empty baseURL selects
// DefaultOpenWeatherBaseURL; a nil limiter disables rate limiting.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string, limiter *rate.Limiter) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client:  client,
			Limiter: limiter,
		},
		circuit: newBreaker("openweather"),
	}
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCurrent struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []owmCondition `json:"weather"`
	Main    struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecast struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     *float64 `json:"temp"`
			Humidity *float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Weather []owmCondition `json:"weather"`
	} `json:"list"`
}

// CurrentByCity fetches current conditions by free-text city name.
func (p *OpenWeatherProvider) CurrentByCity(ctx context.Context, city string) (weather.Current, error) {
	values := url.Values{}
	values.Set("q", city)
	return p.current(ctx, values)
}

// CurrentByCoords fetches current conditions at the given coordinates.
func (p *OpenWeatherProvider) CurrentByCoords(ctx context.Context, at weather.Coordinates) (weather.Current, error) {
	return p.current(ctx, coordValues(at))
}

func (p *OpenWeatherProvider) current(ctx context.Context, values url.Values) (weather.Current, error) {
	var payload owmCurrent
	if err := p.get(ctx, "weather", values, &payload); err != nil {
		return weather.Current{}, err
	}
	if payload.Main.Temp == nil {
		return weather.Current{}, fmt.Errorf("current weather payload has no temperature")
	}

	cur := weather.Current{
		City:         payload.Name,
		Country:      payload.Sys.Country,
		Coord:        weather.Coordinates{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		TemperatureK: *payload.Main.Temp,
		HumidityPct:  valueOr(payload.Main.Humidity, 0),
		WindSpeedMS:  valueOr(payload.Wind.Speed, 0),
	}
	if len(payload.Weather) > 0 {
		cur.Description = payload.Weather[0].Description
		cur.Condition = payload.Weather[0].Main
		cur.Icon = payload.Weather[0].Icon
	}
	return cur, nil
}

// Forecast fetches the 3-hourly forecast series at the given coordinates.
// Entries with missing numbers are kept as samples carrying NaN so the
// aggregator can skip them.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, at weather.Coordinates) ([]weather.Sample, error) {
	var payload owmForecast
	if err := p.get(ctx, "forecast", coordValues(at), &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.Sample, 0, len(payload.List))
	for _, item := range payload.List {
		s := weather.Sample{
			Timestamp:    item.DtTxt,
			TemperatureK: valueOr(item.Main.Temp, math.NaN()),
			HumidityPct:  valueOr(item.Main.Humidity, math.NaN()),
			WindSpeedMS:  valueOr(item.Wind.Speed, math.NaN()),
		}
		if len(item.Weather) > 0 {
			s.Condition = item.Weather[0].Main
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, endpoint string, values url.Values, out interface{}) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		q := url.Values{}
		for k, v := range values {
			q[k] = v
		}
		q.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, q.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, endpoint, buildRequest)
	if err != nil {
		return mapStatus(err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}
	return nil
}

func mapStatus(err error) error {
	var se *StatusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", weather.ErrCityNotFound, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", weather.ErrInvalidAPIKey, err)
	default:
		return err
	}
}

func coordValues(at weather.Coordinates) url.Values {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	return values
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
