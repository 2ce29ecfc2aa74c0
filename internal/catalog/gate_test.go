package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_FirstCheckIsDue(t *testing.T) {
	g := NewGate(time.Minute)
	assert.True(t, g.Due(time.Now()))
	assert.True(t, g.LastAttempt().IsZero())
}

func TestGate_Boundary(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGate(60 * time.Second)
	g.MarkAttempted(base)

	assert.False(t, g.Due(base), "same instant")
	assert.False(t, g.Due(base.Add(59*time.Second)))
	assert.False(t, g.Due(base.Add(60*time.Second-time.Nanosecond)))
	assert.True(t, g.Due(base.Add(60*time.Second)), "boundary is due")
	assert.True(t, g.Due(base.Add(61*time.Second)))
}

func TestGate_MarkResets(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGate(time.Minute)
	g.MarkAttempted(base)

	later := base.Add(2 * time.Minute)
	assert.True(t, g.Due(later))
	g.MarkAttempted(later)
	assert.False(t, g.Due(later))
	assert.Equal(t, later, g.LastAttempt())
}

func TestGate_DefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultRefreshInterval, NewGate(0).Interval())
	assert.Equal(t, DefaultRefreshInterval, NewGate(-time.Second).Interval())
	assert.Equal(t, 5*time.Second, NewGate(5*time.Second).Interval())
}
