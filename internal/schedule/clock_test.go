package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock_RunsCallbacksInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string
	clock.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, time.Unix(0, 0).Add(300*time.Millisecond), clock.Now())
}

func TestManualClock_StopPreventsCallback(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	clock.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestEvery_StopsWhenCallbackReturnsFalse(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	iv := Every(clock, 100*time.Millisecond, func() bool {
		calls++
		return calls < 3
	})

	clock.Advance(time.Second)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, clock.Pending())
	assert.False(t, iv.Stop())
}

func TestEvery_StopCancelsPendingTick(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	calls := 0
	iv := Every(clock, 100*time.Millisecond, func() bool {
		calls++
		return true
	})

	clock.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, calls)
	assert.True(t, iv.Stop())

	clock.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestGroup_StopCancelsAllAndLateAdds(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var g Group
	fired := 0
	g.Add(clock.AfterFunc(time.Second, func() { fired++ }))
	g.Add(Every(clock, 100*time.Millisecond, func() bool { fired++; return true }))

	g.Stop()
	assert.True(t, g.Stopped())

	g.Add(clock.AfterFunc(time.Millisecond, func() { fired++ }))
	clock.Advance(5 * time.Second)
	assert.Zero(t, fired)
}
