package loading

import (
	"testing"
	"time"

	"github.com/MontecalvoAm/portfolio/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func TestGate_MountsOnceAfterDelay(t *testing.T) {
	clock := schedule.NewManualClock(time.Unix(0, 0))
	mounts := 0
	g := Start(clock, DefaultDelay, func() { mounts++ })

	clock.Advance(999 * time.Millisecond)
	assert.True(t, g.Loading())
	assert.Zero(t, mounts)

	clock.Advance(time.Millisecond)
	assert.False(t, g.Loading())
	assert.Equal(t, 1, mounts)

	clock.Advance(10 * time.Second)
	g.fire()
	assert.Equal(t, 1, mounts)
}

func TestGate_StopBeforeDelay(t *testing.T) {
	clock := schedule.NewManualClock(time.Unix(0, 0))
	mounts := 0
	g := Start(clock, DefaultDelay, func() { mounts++ })

	assert.True(t, g.Stop())
	clock.Advance(2 * time.Second)

	assert.Zero(t, mounts)
	assert.True(t, g.Loading())
	assert.False(t, g.Stop())
}

func TestGate_StopAfterOpenIsNoop(t *testing.T) {
	clock := schedule.NewManualClock(time.Unix(0, 0))
	g := Start(clock, DefaultDelay, nil)
	clock.Advance(DefaultDelay)

	assert.False(t, g.Stop())
	assert.False(t, g.Loading())
}
