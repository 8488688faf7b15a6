package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventFixture(t *testing.T) (d *Document, parent, child *Node) {
	t.Helper()
	d = NewDocument()
	parent = d.CreateElement("div")
	child = d.CreateElement("button")
	parent.AppendChild(child)
	d.Body().AppendChild(parent)
	return d, parent, child
}

func TestDispatchPhaseOrdering(t *testing.T) {
	_, parent, child := eventFixture(t)

	var order []string
	parent.AddEventListener("click", func(e *Event) {
		order = append(order, "capture-parent")
		assert.Equal(t, CapturingPhase, e.Phase)
		assert.Same(t, parent, e.CurrentTarget)
		assert.Same(t, child, e.Target)
	}, ListenerOptions{Capture: true})
	parent.AddEventListener("click", func(e *Event) {
		order = append(order, "bubble-parent")
		assert.Equal(t, BubblingPhase, e.Phase)
	})
	child.AddEventListener("click", func(e *Event) {
		order = append(order, "target-child")
		assert.Equal(t, AtTargetPhase, e.Phase)
	})

	child.DispatchEvent(NewEvent("click", true, true))
	assert.Equal(t, []string{"capture-parent", "target-child", "bubble-parent"}, order)
}

func TestNonBubblingEventSkipsBubblePhase(t *testing.T) {
	_, parent, child := eventFixture(t)

	var order []string
	parent.AddEventListener("focus", func(e *Event) { order = append(order, "capture") }, ListenerOptions{Capture: true})
	parent.AddEventListener("focus", func(e *Event) { order = append(order, "bubble") })
	child.AddEventListener("focus", func(e *Event) { order = append(order, "target") })

	child.DispatchEvent(NewEvent("focus", false, false))
	assert.Equal(t, []string{"capture", "target"}, order)
}

func TestTargetPhaseRunsRegistrationOrderAcrossCaptureFlags(t *testing.T) {
	_, _, child := eventFixture(t)

	var order []string
	child.AddEventListener("click", func(e *Event) { order = append(order, "first-bubble") })
	child.AddEventListener("click", func(e *Event) { order = append(order, "second-capture") }, ListenerOptions{Capture: true})
	child.AddEventListener("click", func(e *Event) { order = append(order, "third-bubble") })

	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, []string{"first-bubble", "second-capture", "third-bubble"}, order)
}

func TestStopPropagation(t *testing.T) {
	_, parent, child := eventFixture(t)

	var order []string
	parent.AddEventListener("click", func(e *Event) {
		order = append(order, "capture-parent")
		e.StopPropagation()
	}, ListenerOptions{Capture: true})
	child.AddEventListener("click", func(e *Event) { order = append(order, "target") })
	parent.AddEventListener("click", func(e *Event) { order = append(order, "bubble-parent") })

	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, []string{"capture-parent"}, order)
}

func TestStopImmediatePropagationSkipsSameNode(t *testing.T) {
	_, _, child := eventFixture(t)

	var order []string
	child.AddEventListener("click", func(e *Event) {
		order = append(order, "one")
		e.StopImmediatePropagation()
	})
	child.AddEventListener("click", func(e *Event) { order = append(order, "two") })

	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, []string{"one"}, order)
}

func TestOnceListenerFiresExactlyOnce(t *testing.T) {
	_, _, child := eventFixture(t)

	count := 0
	child.AddEventListener("click", func(e *Event) { count++ }, ListenerOptions{Once: true})

	child.DispatchEvent(NewEvent("click", true, false))
	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, 1, count)
}

func TestOnceListenerRemovedBeforeReentrantDispatch(t *testing.T) {
	_, _, child := eventFixture(t)

	count := 0
	child.AddEventListener("ping", func(e *Event) {
		count++
		if count == 1 {
			// Re-entrant dispatch while the listener body is running.
			child.DispatchEvent(NewEvent("ping", false, false))
		}
	}, ListenerOptions{Once: true})

	child.DispatchEvent(NewEvent("ping", false, false))
	assert.Equal(t, 1, count)
}

func TestRemoveEventListener(t *testing.T) {
	_, _, child := eventFixture(t)

	count := 0
	l := child.AddEventListener("click", func(e *Event) { count++ })
	child.RemoveEventListener(l)
	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, 0, count)

	// Removing again, or removing nil, is a no-op.
	child.RemoveEventListener(l)
	child.RemoveEventListener(nil)
}

func TestDispatchOnDetachedNode(t *testing.T) {
	d := NewDocument()
	lone := d.CreateElement("div")

	fired := false
	lone.AddEventListener("custom", func(e *Event) {
		fired = true
		assert.Same(t, lone, e.Target)
	})
	lone.DispatchEvent(NewEvent("custom", true, false))
	assert.True(t, fired)
}

func TestPreventDefault(t *testing.T) {
	_, _, child := eventFixture(t)

	child.AddEventListener("submit", func(e *Event) { e.PreventDefault() })
	ev := NewEvent("submit", true, true)
	ok := child.DispatchEvent(ev)
	assert.False(t, ok)
	assert.True(t, ev.DefaultPrevented())

	// Non-cancelable events ignore PreventDefault.
	child.AddEventListener("scroll", func(e *Event) { e.PreventDefault() })
	ev2 := NewEvent("scroll", true, false)
	assert.True(t, child.DispatchEvent(ev2))
	assert.False(t, ev2.DefaultPrevented())
}

func TestCustomEventDetail(t *testing.T) {
	_, _, child := eventFixture(t)

	var got interface{}
	child.AddEventListener("custom", func(e *Event) { got = e.Detail })
	child.DispatchEvent(NewCustomEvent("custom", false, false, map[string]int{"n": 7}))
	require.NotNil(t, got)
	assert.Equal(t, map[string]int{"n": 7}, got)
}

func TestListenersOnlyMatchTheirType(t *testing.T) {
	_, _, child := eventFixture(t)

	var order []string
	child.AddEventListener("click", func(e *Event) { order = append(order, "click") })
	child.AddEventListener("keydown", func(e *Event) { order = append(order, "keydown") })

	child.DispatchEvent(NewEvent("keydown", false, false))
	assert.Equal(t, []string{"keydown"}, order)
}

func TestGrandparentChainDispatch(t *testing.T) {
	d := NewDocument()
	grand := d.CreateElement("section")
	parent := d.CreateElement("div")
	child := d.CreateElement("a")
	grand.AppendChild(parent)
	parent.AppendChild(child)
	d.Body().AppendChild(grand)

	var order []string
	grand.AddEventListener("click", func(e *Event) { order = append(order, "g-cap") }, ListenerOptions{Capture: true})
	parent.AddEventListener("click", func(e *Event) { order = append(order, "p-cap") }, ListenerOptions{Capture: true})
	parent.AddEventListener("click", func(e *Event) { order = append(order, "p-bub") })
	grand.AddEventListener("click", func(e *Event) { order = append(order, "g-bub") })

	child.DispatchEvent(NewEvent("click", true, false))
	assert.Equal(t, []string{"g-cap", "p-cap", "p-bub", "g-bub"}, order)
}
