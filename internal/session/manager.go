package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/metrics"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/notify"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/store"
	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

// ErrSessionNotFound is returned by Get for an id that is neither in memory
// nor in the recents store.
var ErrSessionNotFound = errors.New("session not found")

// Options configures a Manager.
type Options struct {
	MaxRecents int
	MessageTTL time.Duration
	IdleTTL    time.Duration // 0 keeps sessions until restart
}

// Manager owns the sessions held in memory. Ledgers outlive sessions through
// the recents store, so an evicted session comes back with its history.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	store    weather.RecentsStore
	opts     Options
	now      func() time.Time
}

// NewManager creates a Manager. recents may be nil, in which case ledgers
// live only as long as their session.
func NewManager(recents weather.RecentsStore, opts Options) *Manager {
	if opts.MaxRecents <= 0 {
		opts.MaxRecents = weather.MaxRecents
	}
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = notify.DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    recents,
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a fresh session with a random id.
func (m *Manager) Create(ctx context.Context) *Session {
	s, _ := m.load(ctx, uuid.NewString(), true)
	return s
}

// Get returns the session for id. A session evicted from memory comes back
// from its persisted ledger; an unknown id gets ErrSessionNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.load(ctx, id, false)
}

// Open is Get that starts a fresh session when nothing is known about id.
// A corrupt persisted ledger starts empty.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	return m.load(ctx, id, true)
}

func (m *Manager) load(ctx context.Context, id string, create bool) (*Session, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	fresh := m.newSession(id)
	if !m.restore(ctx, fresh) && !create {
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	m.sessions[id] = fresh
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return fresh, nil
}

func (m *Manager) newSession(id string) *Session {
	s := &Session{
		ID:     id,
		ledger: weather.NewLedger(m.opts.MaxRecents),
		board:  notify.NewBoard(m.opts.MessageTTL),
		store:  m.store,
		now:    m.now,
	}
	s.lastSeen = m.now()
	return s
}

// restore reports whether the store held anything for the session, even
// when it could not be decoded.
func (m *Manager) restore(ctx context.Context, s *Session) bool {
	if m.store == nil {
		return false
	}
	raw, err := m.store.Load(ctx, s.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR: failed to load recents for session %s: %v", s.ID, err)
		}
		return false
	}
	entries, ok := weather.DecodeRecents(raw)
	if !ok {
		log.Printf("INFO: discarding unreadable recents for session %s", s.ID)
		return true
	}
	s.ledger.Restore(entries)
	return true
}

// Len returns the number of sessions in memory.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepMessages clears expired status messages and returns how many were
// cleared.
func (m *Manager) SweepMessages() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cleared := 0
	for _, s := range m.sessions {
		if s.board.Sweep() {
			cleared++
		}
	}
	return cleared
}

// EvictIdle drops sessions not used for longer than IdleTTL and returns how
// many were dropped.
func (m *Manager) EvictIdle() int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.opts.IdleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return evicted
}
