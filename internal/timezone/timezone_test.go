package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Manaus"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Nowhere/City"))
}

func TestStartOfDay(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	in := time.Date(2026, 10, 19, 17, 45, 12, 9, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestLocationIsCached(t *testing.T) {
	a := Location("America/Recife")
	b := Location("America/Recife")
	assert.Same(t, a, b)
}
