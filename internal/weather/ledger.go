package weather

import (
	"encoding/json"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Ledger is the bounded, most-recently-used list of searched cities. Names
// are unique case-insensitively; the latest casing wins.
type Ledger struct {
	size    int
	entries *lru.Cache[string, string] // lower-cased name -> display name
}

// NewLedger creates an empty ledger holding at most size names. A
// non-positive size falls back to MaxRecents.
func NewLedger(size int) *Ledger {
	if size <= 0 {
		size = MaxRecents
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Ledger{size: size, entries: cache}
}

// Add records city as the most recent search. Blank input is ignored.
func (l *Ledger) Add(city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		return
	}
	// Add on an existing key refreshes its value and moves it to the front.
	l.entries.Add(strings.ToLower(city), city)
}

// List returns the names most-recent-first.
func (l *Ledger) List() []string {
	keys := l.entries.Keys() // oldest to newest
	out := make([]string, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if name, ok := l.entries.Peek(keys[i]); ok {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of names held.
func (l *Ledger) Len() int {
	return l.entries.Len()
}

// Restore replaces the contents with a persisted most-recent-first list,
// re-applying the dedup and size rules.
func (l *Ledger) Restore(entries []string) {
	l.entries.Purge()
	for i := len(entries) - 1; i >= 0; i-- {
		l.Add(entries[i])
	}
}

// EncodeRecents serializes a ledger list for persistence.
func EncodeRecents(entries []string) []byte {
	if entries == nil {
		entries = []string{}
	}
	raw, _ := json.Marshal(entries)
	return raw
}

// DecodeRecents parses a persisted ledger list. Anything that is not a JSON
// array of strings reports false; callers treat that as an empty ledger.
func DecodeRecents(raw []byte) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	if entries == nil {
		return nil, false
	}
	return entries, true
}
