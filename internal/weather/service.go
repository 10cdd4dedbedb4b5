package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/metrics"
)

// Service performs lookups: current weather first, then the forecast for the
// coordinates it resolved, aggregated into daily summaries.
type Service struct {
	client Client
	namer  PlaceNamer
	days   int
}

// NewService creates a new Service. namer may be nil. A non-positive days
// falls back to ForecastDays.
func NewService(client Client, namer PlaceNamer, days int) *Service {
	if days <= 0 {
		days = ForecastDays
	}
	return &Service{
		client: client,
		namer:  namer,
		days:   days,
	}
}

// LookupByCity resolves city through the current-weather endpoint, then
// fetches the forecast by the coordinates that came back.
func (s *Service) LookupByCity(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		metrics.RecordLookup("city", ErrEmptyCity)
		return Report{}, ErrEmptyCity
	}

	log.Printf("DEBUG: LookupByCity called for %q", city)

	cur, err := s.client.CurrentByCity(ctx, city)
	if err != nil {
		err = currentError(err)
		log.Printf("lookup for %q failed: %v", city, err)
		metrics.RecordLookup("city", err)
		return Report{}, err
	}

	report, err := s.complete(ctx, cur)
	metrics.RecordLookup("city", err)
	return report, err
}

// LookupByCoords fetches current weather and forecast at the given
// coordinates.
func (s *Service) LookupByCoords(ctx context.Context, at Coordinates) (Report, error) {
	log.Printf("DEBUG: LookupByCoords called for %f,%f", at.Lat, at.Lon)

	cur, err := s.client.CurrentByCoords(ctx, at)
	if err != nil {
		err = currentError(err)
		log.Printf("lookup for %f,%f failed: %v", at.Lat, at.Lon, err)
		metrics.RecordLookup("coords", err)
		return Report{}, err
	}
	if cur.Coord == (Coordinates{}) {
		cur.Coord = at
	}

	report, err := s.complete(ctx, cur)
	metrics.RecordLookup("coords", err)
	return report, err
}

func (s *Service) complete(ctx context.Context, cur Current) (Report, error) {
	if cur.City == "" && s.namer != nil {
		name, err := s.namer.CityAt(ctx, cur.Coord)
		if err != nil {
			log.Printf("INFO: could not name %f,%f: %v", cur.Coord.Lat, cur.Coord.Lon, err)
		} else {
			cur.City = name
		}
	}

	samples, err := s.client.Forecast(ctx, cur.Coord)
	if err != nil {
		log.Printf("forecast for %s failed: %v", cur.Title(), err)
		return Report{}, fmt.Errorf("%w: %w", ErrForecast, err)
	}

	daily := Aggregate(samples, s.days)
	if len(daily) == 0 {
		log.Printf("INFO: forecast for %s produced no daily summaries", cur.Title())
	}

	return Report{Current: cur, Daily: daily}, nil
}

func currentError(err error) error {
	if errors.Is(err, ErrCityNotFound) || errors.Is(err, ErrInvalidAPIKey) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrCurrentWeather, err)
}
