package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStop_ReturnsElapsed(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(1500 * time.Millisecond)}
	clock := func() time.Time {
		ret := ticks[0]
		ticks = ticks[1:]
		return ret
	}
	assert.Equal(t, 1500*time.Millisecond, newWithClock("generating", clock).Stop())
}

func TestStop_RealClock(t *testing.T) {
	assert.GreaterOrEqual(t, New("nothing").Stop(), time.Duration(0))
}
