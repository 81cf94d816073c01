package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	t.Parallel()

	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	assert.False(t, now.Before(before))
	assert.GreaterOrEqual(t, clock.Since(before), time.Duration(0))
}

func TestMockClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	assert.Equal(t, start, clock.Now())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clock.Now())
	assert.Equal(t, 90*time.Minute, clock.Since(start))

	reset := start.Add(time.Hour)
	clock.Set(reset)
	assert.Equal(t, reset, clock.Now())
}
