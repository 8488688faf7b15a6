package eventloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutsFireInDelayOrder(t *testing.T) {
	l := New()
	var order []string
	l.SetTimeout(func(args ...interface{}) { order = append(order, "slow") }, 50*time.Millisecond)
	l.SetTimeout(func(args ...interface{}) { order = append(order, "fast") }, 10*time.Millisecond)
	l.SetTimeout(func(args ...interface{}) { order = append(order, "mid") }, 30*time.Millisecond)

	l.Settle()
	assert.Equal(t, []string{"fast", "mid", "slow"}, order)
	assert.Equal(t, 50*time.Millisecond, l.Now())
}

func TestEqualDelaysFireInRegistrationOrder(t *testing.T) {
	l := New()
	var order []int
	for i := 1; i <= 5; i++ {
		i := i
		l.SetTimeout(func(args ...interface{}) { order = append(order, i) }, 0)
	}
	l.Settle()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestNestedTimeoutRunsInLaterPass(t *testing.T) {
	l := New()
	var order []int
	l.SetTimeout(func(args ...interface{}) {
		order = append(order, 1)
		l.SetTimeout(func(args ...interface{}) { order = append(order, 3) }, 0)
		order = append(order, 2)
	}, 0)

	l.Settle()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestTimeoutArgumentsForwarded(t *testing.T) {
	l := New()
	var got []interface{}
	l.SetTimeout(func(args ...interface{}) { got = args }, 0, "a", 2, true)
	l.Settle()
	assert.Equal(t, []interface{}{"a", 2, true}, got)
}

func TestIDsStrictlyIncreasingAndNeverReused(t *testing.T) {
	l := New()
	noop := func(args ...interface{}) {}
	a := l.SetTimeout(noop, 0)
	b := l.SetTimeout(noop, 0)
	l.ClearTimeout(a)
	c := l.SetTimeout(noop, 0)
	d := l.SetInterval(noop, time.Millisecond)
	e := l.RequestAnimationFrame(func(ts time.Duration) {})

	ids := []TaskID{a, b, c, d, e}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
	l.Close()
}

func TestClearTimeoutBeforeSettlePreventsFiring(t *testing.T) {
	l := New()
	fired := false
	id := l.SetTimeout(func(args ...interface{}) { fired = true }, 0)
	// Pile on more timers after the cancel target.
	for i := 0; i < 10; i++ {
		l.SetTimeout(func(args ...interface{}) {}, 0)
	}
	l.ClearTimeout(id)
	l.Settle()
	assert.False(t, fired)
}

func TestClearUnknownIDsAreNoOps(t *testing.T) {
	l := New()
	l.ClearTimeout(999)
	l.ClearInterval(999)
	l.CancelAnimationFrame(999)

	id := l.SetTimeout(func(args ...interface{}) {}, 0)
	l.ClearTimeout(id)
	l.ClearTimeout(id) // double clear
	l.Settle()
}

func TestIntervalReArmsAndIsNotWaitedOn(t *testing.T) {
	l := New()
	ticks := 0
	id := l.SetInterval(func(args ...interface{}) { ticks++ }, 10*time.Millisecond)
	l.SetTimeout(func(args ...interface{}) {}, 25*time.Millisecond)

	// Settle returns even though the interval is still armed.
	l.Settle()
	assert.False(t, l.HasPending())
	assert.Greater(t, ticks, 0)

	before := ticks
	l.SetTimeout(func(args ...interface{}) {}, 15*time.Millisecond)
	l.Settle()
	assert.Greater(t, ticks, before)

	l.ClearInterval(id)
	total := ticks
	l.SetTimeout(func(args ...interface{}) {}, 50*time.Millisecond)
	l.Settle()
	assert.Equal(t, total, ticks)
}

func TestAnimationFrameFiresOnce(t *testing.T) {
	l := New()
	var stamps []time.Duration
	l.RequestAnimationFrame(func(ts time.Duration) { stamps = append(stamps, ts) })
	l.Settle()
	require.Len(t, stamps, 1)
	assert.Equal(t, FrameInterval, stamps[0])

	// A frame scheduled inside a frame fires on a later pass.
	l.RequestAnimationFrame(func(ts time.Duration) {
		stamps = append(stamps, ts)
		l.RequestAnimationFrame(func(ts2 time.Duration) { stamps = append(stamps, ts2) })
	})
	l.Settle()
	require.Len(t, stamps, 3)
	assert.Greater(t, stamps[2], stamps[1])
}

func TestCancelAnimationFrame(t *testing.T) {
	l := New()
	fired := false
	id := l.RequestAnimationFrame(func(ts time.Duration) { fired = true })
	l.CancelAnimationFrame(id)
	l.Settle()
	assert.False(t, fired)
}

func TestCloseClearsEverything(t *testing.T) {
	l := New()
	fired := false
	l.SetTimeout(func(args ...interface{}) { fired = true }, 0)
	l.SetInterval(func(args ...interface{}) { fired = true }, time.Millisecond)
	l.RequestAnimationFrame(func(ts time.Duration) { fired = true })

	l.Close()
	l.Settle()
	assert.False(t, fired)
	assert.True(t, l.Closed())

	// Scheduling after close is inert.
	id := l.SetTimeout(func(args ...interface{}) { fired = true }, 0)
	assert.Equal(t, TaskID(0), id)
	l.Settle()
	assert.False(t, fired)
}

func TestCallbackPanicDoesNotCorruptQueue(t *testing.T) {
	l := New()
	var seen []string
	var reported error
	l.OnError(func(err error) { reported = err })

	l.SetTimeout(func(args ...interface{}) { seen = append(seen, "first") }, 0)
	l.SetTimeout(func(args ...interface{}) { panic("boom") }, 0)
	l.SetTimeout(func(args ...interface{}) { seen = append(seen, "third") }, 0)

	l.Settle()
	assert.Equal(t, []string{"first", "third"}, seen)
	require.Error(t, reported)
	assert.Contains(t, reported.Error(), "boom")
}

func TestLoopIsolation(t *testing.T) {
	l1 := New()
	l2 := New()

	id1 := l1.SetTimeout(func(args ...interface{}) {}, 0)
	id2 := l2.SetTimeout(func(args ...interface{}) {}, 0)
	// Independent loops hand out ids from their own sequences.
	assert.Equal(t, id1, id2)

	fired := false
	l2.SetTimeout(func(args ...interface{}) { fired = true }, 0)
	// Clearing on one loop cannot reach the other's entries.
	l1.ClearTimeout(2)
	l2.Settle()
	assert.True(t, fired)
}
