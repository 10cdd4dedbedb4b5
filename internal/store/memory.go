package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/YogeshSabbani1213/Weather-Application-Development/internal/weather"
)

var (
	// ErrNotFound is returned when nothing was saved under a key.
	ErrNotFound = errors.New("no recents saved for key")
)

var _ weather.RecentsStore = (*MemoryStore)(nil)

// entry holds one encoded ledger and when it was written.
type entry struct {
	raw     []byte
	savedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory recents store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session key, value: encoded ledger
	data map[string]entry

	// retention configuration
	maxAge time.Duration // optional max age since an entry's last save
}

// NewMemoryStore creates a new MemoryStore. If maxAge is <= 0, entries never
// expire.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]entry),
		maxAge: maxAge,
	}
}

// Save stores a copy of raw under key and enforces retention.
func (s *MemoryStore) Save(_ context.Context, key string, raw []byte) error {
	buf := make([]byte, len(raw))
	copy(buf, raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.data[key] = entry{raw: buf, savedAt: now}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := now.Add(-s.maxAge)
		for k, e := range s.data {
			if e.savedAt.Before(cutoff) {
				delete(s.data, k)
			}
		}
	}
	return nil
}

// Load returns the raw bytes saved under key.
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if s.maxAge > 0 && time.Since(e.savedAt) > s.maxAge {
		return nil, ErrNotFound
	}

	out := make([]byte, len(e.raw))
	copy(out, e.raw)
	return out, nil
}

// Len returns the number of keys held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
