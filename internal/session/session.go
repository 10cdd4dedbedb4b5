// Package session holds per-client application state: the recent-searches
// ledger, today's display unit, the status message and the lookup
// generation counter.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/metrics"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/notify"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

var (
	// ErrNothingDisplayed is returned by Toggle before any lookup succeeded.
	ErrNothingDisplayed = errors.New("no current temperature displayed")
	// ErrSuperseded is returned when a newer lookup started on the same
	// session before this one finished; its result was discarded.
	ErrSuperseded = errors.New("lookup superseded by a newer one")
)

const extremeMessage = "Extreme temperature alert: above 40°C! Take precautions."

// LookupFunc performs one weather lookup.
type LookupFunc func(ctx context.Context) (weather.Report, error)

// Session is the state of one client. All methods are safe for concurrent
// use; mutations are serialized.
type Session struct {
	ID string

	mu       sync.Mutex
	ledger   *weather.Ledger
	display  weather.DisplayState
	board    *notify.Board
	store    weather.RecentsStore
	gen      uint64
	report   *weather.Report
	lastSeen time.Time
	now      func() time.Time
}

// Today is the rendered current-weather card.
type Today struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Condition   string       `json:"condition"`
	IconURL     string       `json:"iconUrl,omitempty"`
	Display     string       `json:"display"`
	Unit        weather.Unit `json:"unit"`
	ToggleLabel string       `json:"toggleLabel"`
	HumidityPct float64      `json:"humidityPercent"`
	WindKmph    float64      `json:"windKmph"`
	Rainy       bool         `json:"rainy"`
	Extreme     bool         `json:"extreme"`
}

// View is everything a front-end needs to render the session.
type View struct {
	Today   *Today                 `json:"today,omitempty"`
	Daily   []weather.DailySummary `json:"daily"`
	Recents []string               `json:"recents"`
	Message *notify.Message        `json:"message,omitempty"`
}

// Run performs lookup as the session's newest request. pending is shown as
// an info message while it runs. Only the newest lookup may change the
// session; an older one that finishes late gets ErrSuperseded.
func (s *Session) Run(ctx context.Context, pending string, lookup LookupFunc) (View, error) {
	gen := s.begin(pending)

	report, err := lookup(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if gen != s.gen {
		metrics.StaleResultsTotal.Inc()
		log.Printf("INFO: session %s dropped result of lookup %d (latest is %d)", s.ID, gen, s.gen)
		return s.viewLocked(), ErrSuperseded
	}

	if err != nil {
		s.board.Show(weather.UserMessage(err), notify.KindError)
		return s.viewLocked(), err
	}

	s.applyLocked(ctx, report)
	return s.viewLocked(), nil
}

func (s *Session) begin(pending string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.gen++
	if pending != "" {
		s.board.Show(pending, notify.KindInfo)
	}
	return s.gen
}

func (s *Session) applyLocked(ctx context.Context, report weather.Report) {
	cur := report.Current

	s.ledger.Add(cur.City)
	s.persistLocked(ctx)

	s.report = &report
	s.display.Reset(cur.TemperatureK)

	if cur.Extreme() {
		s.board.Show(extremeMessage, notify.KindError)
	} else {
		s.board.Show(fmt.Sprintf("Weather for %s loaded.", cur.City), notify.KindSuccess)
	}
}

func (s *Session) persistLocked(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.ID, weather.EncodeRecents(s.ledger.List())); err != nil {
		log.Printf("ERROR: failed to persist recents for session %s: %v", s.ID, err)
	}
}

// Toggle switches today's temperature to the other unit, converting the
// value currently displayed.
func (s *Session) Toggle() (Today, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.report == nil || !s.display.Shown() {
		return Today{}, ErrNothingDisplayed
	}
	s.display.Toggle()
	metrics.TogglesTotal.WithLabelValues(string(s.display.Unit())).Inc()
	return *s.todayLocked(), nil
}

// Recents returns the ledger, most-recent-first.
func (s *Session) Recents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.ledger.List()
}

// Message returns the visible status message.
func (s *Session) Message() (notify.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.board.Current()
}

// View returns the current rendering of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		Daily:   []weather.DailySummary{},
		Recents: s.ledger.List(),
		Today:   s.todayLocked(),
	}
	if s.report != nil {
		v.Daily = s.report.Daily
	}
	if m, ok := s.board.Current(); ok {
		v.Message = &m
	}
	return v
}

func (s *Session) todayLocked() *Today {
	if s.report == nil {
		return nil
	}
	cur := s.report.Current
	return &Today{
		Title:       cur.Title(),
		Description: cur.Description,
		Condition:   cur.Condition,
		IconURL:     cur.IconURL(),
		Display:     s.display.Text(),
		Unit:        s.display.Unit(),
		ToggleLabel: s.display.Label(),
		HumidityPct: cur.HumidityPct,
		WindKmph:    cur.WindKmph(),
		Rainy:       cur.Rainy(),
		Extreme:     cur.Extreme(),
	}
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
