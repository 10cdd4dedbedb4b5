package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/session"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

var validate = validator.New()

// lookupTimeout bounds both upstream calls of one lookup.
const lookupTimeout = 20 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, sessions *session.Manager) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		s := sessions.Create(c.UserContext())
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": s.ID})
	})

	v1.Get("/sessions/:id/weather", func(c *fiber.Ctx) error {
		s, err := loadSession(c, sessions, true)
		if err != nil {
			return err
		}

		var q weatherQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), lookupTimeout)
		defer cancel()

		var view session.View
		if q.byCoords() {
			at := q.coordinates()
			view, err = s.Run(ctx, "Getting weather for current location...", func(ctx context.Context) (weather.Report, error) {
				return service.LookupByCoords(ctx, at)
			})
		} else {
			city := q.City
			view, err = s.Run(ctx, "Searching...", func(ctx context.Context) (weather.Report, error) {
				return service.LookupByCity(ctx, city)
			})
		}
		if err != nil {
			return lookupError(err)
		}

		return c.JSON(view)
	})

	v1.Post("/sessions/:id/toggle", func(c *fiber.Ctx) error {
		s, err := loadSession(c, sessions, false)
		if err != nil {
			return err
		}

		today, err := s.Toggle()
		if err != nil {
			if errors.Is(err, session.ErrNothingDisplayed) {
				return fiber.NewError(fiber.StatusConflict, "no temperature to toggle; look up a city first")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to toggle unit")
		}
		return c.JSON(today)
	})

	v1.Get("/sessions/:id/recents", func(c *fiber.Ctx) error {
		s, err := loadSession(c, sessions, false)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"recents": s.Recents()})
	})

	v1.Get("/sessions/:id/message", func(c *fiber.Ctx) error {
		s, err := loadSession(c, sessions, false)
		if err != nil {
			return err
		}
		msg, ok := s.Message()
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(msg)
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		s, err := loadSession(c, sessions, false)
		if err != nil {
			return err
		}
		return c.JSON(s.View())
	})
}

// sessionParam identifies a session in the path.
type sessionParam struct {
	ID string `validate:"required,uuid4"`
}

// loadSession resolves the path session. Only a lookup may start a session
// for an id the server has not seen.
func loadSession(c *fiber.Ctx, sessions *session.Manager, open bool) (*session.Session, error) {
	p := sessionParam{ID: c.Params("id")}
	if err := validate.Struct(p); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	get := sessions.Get
	if open {
		get = sessions.Open
	}
	s, err := get(c.UserContext(), p.ID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}
	return s, nil
}

// weatherQuery holds query parameters for a lookup: a city name, or a
// latitude/longitude pair.
type weatherQuery struct {
	City string `validate:"max=200"`
	Lat  string `validate:"omitempty,latitude"`
	Lon  string `validate:"omitempty,longitude"`
}

func (q *weatherQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")
	q.Lat = strings.TrimSpace(c.Query("lat"))
	q.Lon = strings.TrimSpace(c.Query("lon"))

	if err := validate.Struct(q); err != nil {
		return err
	}
	if (q.Lat == "") != (q.Lon == "") {
		return errors.New("lat and lon must be given together")
	}
	if q.byCoords() && strings.TrimSpace(q.City) != "" {
		return errors.New("use either city or lat/lon, not both")
	}
	return nil
}

func (q *weatherQuery) byCoords() bool {
	return q.Lat != "" && q.Lon != ""
}

// coordinates assumes bind validated both values.
func (q *weatherQuery) coordinates() weather.Coordinates {
	lat, _ := strconv.ParseFloat(q.Lat, 64)
	lon, _ := strconv.ParseFloat(q.Lon, 64)
	return weather.Coordinates{Lat: lat, Lon: lon}
}

func lookupError(err error) error {
	switch {
	case errors.Is(err, session.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, "a newer lookup replaced this one")
	case errors.Is(err, weather.ErrEmptyCity):
		return fiber.NewError(fiber.StatusBadRequest, weather.UserMessage(err))
	case errors.Is(err, weather.ErrForecast):
		return fiber.NewError(fiber.StatusBadGateway, weather.UserMessage(err))
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, weather.UserMessage(err))
	default:
		return fiber.NewError(fiber.StatusBadGateway, weather.UserMessage(err))
	}
}
