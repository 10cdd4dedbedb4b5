// Package notify holds the short-lived status messages shown after a lookup.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 4000 * time.Millisecond

// Kind classifies a message.
type Kind string

const (
	KindInfo    Kind = "info"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Message is one status line.
type Message struct {
	Text      string    `json:"text"`
	Kind      Kind      `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Board shows at most one message at a time; a new message replaces the
// previous one and restarts the dismiss timer.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current *Message
}

// NewBoard creates a board. A ttl <= 0 selects DefaultTTL.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// Show replaces the visible message.
func (b *Board) Show(text string, kind Kind) Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Message{Text: text, Kind: kind, ExpiresAt: b.now().Add(b.ttl)}
	b.current = &m
	return m
}

// Current returns the visible message, if it has not expired.
func (b *Board) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil || !b.now().Before(b.current.ExpiresAt) {
		return Message{}, false
	}
	return *b.current, true
}

// Sweep drops an expired message and reports whether it did.
func (b *Board) Sweep() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil && !b.now().Before(b.current.ExpiresAt) {
		b.current = nil
		return true
	}
	return false
}
