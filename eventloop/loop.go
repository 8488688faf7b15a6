// Package eventloop schedules deferred work for a single document/window
// instance: one-shot timeouts, repeating intervals and animation-frame
// callbacks. Scheduling and firing never run concurrently; the owner drives
// time forward explicitly through Settle.
package eventloop

import (
	"fmt"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/sirupsen/logrus"
)

// TaskID identifies a scheduled entry. IDs are strictly increasing within a
// loop and never reused, also after cancellation. Timeouts, intervals and
// animation frames share one sequence.
type TaskID uint64

// TaskFunc is a timeout/interval callback with its bound arguments.
type TaskFunc func(args ...interface{})

// FrameFunc is an animation-frame callback receiving the frame timestamp.
type FrameFunc func(ts time.Duration)

// FrameInterval is the virtual delay applied to animation-frame requests.
const FrameInterval = 16 * time.Millisecond

type taskKind uint8

const (
	oneShotTask taskKind = iota
	intervalTask
	frameTask
)

type task struct {
	id       TaskID
	kind     taskKind
	due      time.Duration
	delay    time.Duration
	fn       TaskFunc
	frame    FrameFunc
	args     []interface{}
	canceled bool
	pass     uint64 // last drain pass this task fired in
}

// Loop owns the timer queues of one window. It is not safe for concurrent
// use; the single-threaded contract of the DOM extends to its loop.
type Loop struct {
	heap    *binaryheap.Heap
	pending map[TaskID]*task
	nextID  TaskID
	now     time.Duration
	passNum uint64
	closed  bool

	onError func(error)
	log     *logrus.Entry
}

// New creates an empty loop with the virtual clock at zero.
func New() *Loop {
	return &Loop{
		heap: binaryheap.NewWith(func(a, b interface{}) int {
			ta, tb := a.(*task), b.(*task)
			if ta.due != tb.due {
				if ta.due < tb.due {
					return -1
				}
				return 1
			}
			// Fire-time ties break by ascending id, i.e. registration order.
			if ta.id < tb.id {
				return -1
			}
			return 1
		}),
		pending: map[TaskID]*task{},
		nextID:  1,
		log:     logrus.WithField("component", "eventloop"),
	}
}

// OnError installs the observer for recovered callback failures. A failing
// callback never corrupts the queue for subsequent entries.
func (l *Loop) OnError(fn func(error)) {
	l.onError = fn
}

// Now returns the loop's virtual time.
func (l *Loop) Now() time.Duration {
	return l.now
}

// SetTimeout enqueues fn to run once after delay. Extra args are forwarded
// to the callback at fire time.
func (l *Loop) SetTimeout(fn TaskFunc, delay time.Duration, args ...interface{}) TaskID {
	return l.schedule(&task{kind: oneShotTask, delay: delay, fn: fn, args: args})
}

// SetInterval enqueues fn to run every delay, re-arming after each fire
// until cleared.
func (l *Loop) SetInterval(fn TaskFunc, delay time.Duration, args ...interface{}) TaskID {
	return l.schedule(&task{kind: intervalTask, delay: delay, fn: fn, args: args})
}

// RequestAnimationFrame enqueues fn for the next frame tick.
func (l *Loop) RequestAnimationFrame(fn FrameFunc) TaskID {
	return l.schedule(&task{kind: frameTask, delay: FrameInterval, frame: fn})
}

func (l *Loop) schedule(t *task) TaskID {
	if l.closed {
		return 0
	}
	t.id = l.nextID
	l.nextID++
	t.due = l.now + t.delay
	l.pending[t.id] = t
	l.heap.Push(t)
	return t.id
}

// ClearTimeout cancels a pending entry. Unknown and already-cleared ids are
// tolerated. The id space is shared, so this also clears intervals and
// animation frames.
func (l *Loop) ClearTimeout(id TaskID) {
	if t, ok := l.pending[id]; ok {
		t.canceled = true
		delete(l.pending, id)
	}
}

// ClearInterval cancels a repeating entry.
func (l *Loop) ClearInterval(id TaskID) {
	l.ClearTimeout(id)
}

// CancelAnimationFrame cancels a frame request.
func (l *Loop) CancelAnimationFrame(id TaskID) {
	l.ClearTimeout(id)
}

// HasPending reports whether any one-shot or frame entries are pending.
// Intervals do not count; they re-arm forever.
func (l *Loop) HasPending() bool {
	for _, t := range l.pending {
		if t.kind != intervalTask {
			return true
		}
	}
	return false
}

// Settle drains pending work: due entries run in fire-time order, ties in
// registration order, pass after pass until no one-shot or frame entries
// remain. A callback scheduled during a pass runs in a later pass, never
// its own. Intervals fire when due (at most once per pass) but are never
// waited upon.
func (l *Loop) Settle() {
	for !l.closed && l.HasPending() {
		l.pass()
	}
}

// pass runs every entry that existed when the pass started. The id
// high-water mark fences off work scheduled mid-pass.
func (l *Loop) pass() {
	l.passNum++
	fence := l.nextID
	var deferred []*task
	for {
		v, ok := l.heap.Pop()
		if !ok {
			break
		}
		t := v.(*task)
		if t.canceled {
			continue
		}
		if t.id >= fence || t.pass == l.passNum {
			deferred = append(deferred, t)
			continue
		}
		if t.due > l.now {
			l.now = t.due
		}
		t.pass = l.passNum
		switch t.kind {
		case intervalTask:
			t.due = l.now + t.delay
			deferred = append(deferred, t)
			l.run(t)
		default:
			delete(l.pending, t.id)
			l.run(t)
		}
		if l.closed {
			return
		}
	}
	for _, t := range deferred {
		l.heap.Push(t)
	}
}

func (l *Loop) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("scheduled callback %d panicked: %v", t.id, r)
			l.log.WithError(err).Error("callback failure")
			if l.onError != nil {
				l.onError(err)
			}
		}
	}()
	if t.kind == frameTask {
		t.frame(l.now)
		return
	}
	t.fn(t.args...)
}

// Close tears the loop down: every pending entry of every kind is cleared
// and nothing scheduled afterwards will ever fire.
func (l *Loop) Close() {
	l.closed = true
	l.heap.Clear()
	for id := range l.pending {
		delete(l.pending, id)
	}
}

// Closed reports whether Close has run.
func (l *Loop) Closed() bool {
	return l.closed
}
