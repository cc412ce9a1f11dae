package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	pinned := time.Date(2025, 7, 4, 12, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	c.Set(pinned)
	assert.Equal(t, pinned.UTC(), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewSystemClock().Now().Location())
}
