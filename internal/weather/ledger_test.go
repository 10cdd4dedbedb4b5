package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCaseInsensitiveDedup(t *testing.T) {
	l := NewLedger(MaxRecents)
	l.Add("Paris")
	l.Add("paris")

	assert.Equal(t, []string{"paris"}, l.List())
}

func TestLedgerMovesRepeatToFront(t *testing.T) {
	l := NewLedger(MaxRecents)
	l.Add("Oslo")
	l.Add("Rome")
	l.Add("OSLO")

	assert.Equal(t, []string{"OSLO", "Rome"}, l.List())
}

func TestLedgerBound(t *testing.T) {
	l := NewLedger(MaxRecents)
	for i := 1; i <= 7; i++ {
		l.Add(fmt.Sprintf("City%d", i))
	}

	list := l.List()
	require.Len(t, list, MaxRecents)
	assert.Equal(t, "City7", list[0])
	assert.NotContains(t, list, "City1")
	assert.Equal(t, "City2", list[len(list)-1])
}

func TestLedgerIgnoresBlank(t *testing.T) {
	l := NewLedger(0)
	l.Add("  ")
	l.Add(" Tokyo ")

	assert.Equal(t, []string{"Tokyo"}, l.List())
	assert.Equal(t, 1, l.Len())
}

func TestLedgerRestore(t *testing.T) {
	l := NewLedger(3)
	l.Add("Stale")

	l.Restore([]string{"Berlin", "Madrid", "berlin", "Vienna", "Prague"})

	// Dedup keeps the most recent casing; the bound drops the oldest.
	assert.Equal(t, []string{"Berlin", "Madrid", "Vienna"}, l.List())
}

func TestRecentsRoundTrip(t *testing.T) {
	l := NewLedger(MaxRecents)
	l.Add("Nairobi")
	l.Add("Quito")

	entries, ok := DecodeRecents(EncodeRecents(l.List()))
	require.True(t, ok)
	assert.Equal(t, []string{"Quito", "Nairobi"}, entries)

	assert.Equal(t, "[]", string(EncodeRecents(nil)))
}

func TestDecodeRecentsCorrupt(t *testing.T) {
	for _, raw := range []string{"", "{", "null", `{"a":1}`, `[1,2]`, "not json"} {
		entries, ok := DecodeRecents([]byte(raw))
		assert.False(t, ok, raw)
		assert.Nil(t, entries, raw)
	}

	entries, ok := DecodeRecents([]byte("[]"))
	assert.True(t, ok)
	assert.Empty(t, entries)
}
