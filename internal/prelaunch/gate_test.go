package prelaunch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_NoDateIsOpen(t *testing.T) {
	g := New("", 2)
	closed, days := g.Status(time.Now())
	assert.False(t, closed)
	assert.Equal(t, 0, days)
}

func TestGate_MalformedDateFailsOpen(t *testing.T) {
	g := New("june 1st", 2)
	closed, _ := g.Status(time.Now())
	assert.False(t, closed)
}

func TestGate_ClosedBeforeWindow(t *testing.T) {
	g := New("2025-06-01", 2)

	now := time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC)
	closed, days := g.Status(now)
	assert.True(t, closed)
	assert.Equal(t, 3, days)
}

func TestGate_OpenInsideWindow(t *testing.T) {
	g := New("2025-06-01", 2)

	now := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	closed, _ := g.Status(now)
	assert.False(t, closed)
}

func TestGate_DaysLeftIgnoresTimeOfDay(t *testing.T) {
	g := New("2025-06-01", 2)

	// Late in the evening the calendar difference is still 3 days.
	now := time.Date(2025, 5, 29, 23, 59, 0, 0, time.UTC)
	closed, days := g.Status(now)
	assert.True(t, closed)
	assert.Equal(t, 3, days)
}

func TestGate_ExactBoundaryIsOpen(t *testing.T) {
	g := New("2025-06-01", 2)

	now := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
	closed, _ := g.Status(now)
	assert.False(t, closed)

	// One second before the boundary it is still closed.
	closed, days := g.Status(now.Add(-time.Second))
	assert.True(t, closed)
	assert.Equal(t, 3, days)
}
