package dom

import "sort"

type EventPhase uint8

const (
	NonePhase EventPhase = iota
	CapturingPhase
	AtTargetPhase
	BubblingPhase
)

// Event is a synthetic event propagated through the tree. Detail carries an
// opaque payload for custom events.
type Event struct {
	Type          string
	Bubbles       bool
	Cancelable    bool
	Target        *Node
	CurrentTarget *Node
	Phase         EventPhase
	Detail        interface{}

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

func NewEvent(eventType string, bubbles, cancelable bool) *Event {
	return &Event{Type: eventType, Bubbles: bubbles, Cancelable: cancelable}
}

// NewCustomEvent is NewEvent plus an opaque detail payload.
func NewCustomEvent(eventType string, bubbles, cancelable bool, detail interface{}) *Event {
	e := NewEvent(eventType, bubbles, cancelable)
	e.Detail = detail
	return e
}

func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation lets the current node's remaining listeners run but skips
// every later node and phase.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

// EventHandler is the callback invoked for a matching dispatched event.
type EventHandler func(*Event)

// Listener is the registration handle. Go functions are not comparable, so
// removal matches on the handle itself; the handle pins the (type, callback,
// capture) triple the registration was made with.
type Listener struct {
	Type    string
	Capture bool
	Once    bool

	handler EventHandler
	seq     uint64
	removed bool
}

// ListenerOptions mirror the addEventListener options bag.
type ListenerOptions struct {
	Capture bool
	Once    bool
}

// listenerStore keeps two registration-ordered sequences per node, keyed by
// phase eligibility. seq numbers span both so the target phase can replay
// overall registration order.
type listenerStore struct {
	capture []*Listener
	bubble  []*Listener
	nextSeq uint64
}

func (n *Node) store() *listenerStore {
	if n.listeners == nil {
		n.listeners = &listenerStore{}
	}
	return n.listeners
}

// AddEventListener registers a handler and returns its removal handle.
func (n *Node) AddEventListener(eventType string, h EventHandler, opts ...ListenerOptions) *Listener {
	var o ListenerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	s := n.store()
	l := &Listener{
		Type:    eventType,
		Capture: o.Capture,
		Once:    o.Once,
		handler: h,
		seq:     s.nextSeq,
	}
	s.nextSeq++
	if l.Capture {
		s.capture = append(s.capture, l)
	} else {
		s.bubble = append(s.bubble, l)
	}
	return l
}

// RemoveEventListener drops a previously registered handle. Removing a
// handle that is not registered on this node is a no-op.
func (n *Node) RemoveEventListener(l *Listener) {
	if n.listeners == nil || l == nil {
		return
	}
	l.removed = true
	n.listeners.capture = dropListener(n.listeners.capture, l)
	n.listeners.bubble = dropListener(n.listeners.bubble, l)
}

func dropListener(list []*Listener, l *Listener) []*Listener {
	for i := range list {
		if list[i] == l {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// DispatchEvent runs the three propagation phases for ev with n as target.
// Dispatching on a detached node degrades to the target phase only. The
// return value is false when a listener prevented the default.
func (n *Node) DispatchEvent(ev *Event) bool {
	ev.Target = n

	// Ancestor chain from the root down to target's parent.
	var chain []*Node
	for a := n.ParentNode; a != nil; a = a.ParentNode {
		chain = append([]*Node{a}, chain...)
	}

	ev.Phase = CapturingPhase
	for _, a := range chain {
		if ev.propagationStopped {
			break
		}
		a.invokeListeners(ev, true, false)
	}

	if !ev.propagationStopped {
		ev.Phase = AtTargetPhase
		n.invokeListeners(ev, true, true)
	}

	if ev.Bubbles && !ev.propagationStopped {
		ev.Phase = BubblingPhase
		for i := len(chain) - 1; i >= 0; i-- {
			if ev.propagationStopped {
				break
			}
			chain[i].invokeListeners(ev, false, true)
		}
	}

	ev.Phase = NonePhase
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

// invokeListeners runs the node's listeners eligible for the phase selected
// by wantCapture/wantBubble, in registration order across both sequences.
// Once-listeners are unregistered before their first invocation so a
// re-entrant dispatch cannot fire them twice.
func (n *Node) invokeListeners(ev *Event, wantCapture, wantBubble bool) {
	if n.listeners == nil {
		return
	}
	var run []*Listener
	if wantCapture {
		run = append(run, n.listeners.capture...)
	}
	if wantBubble {
		run = append(run, n.listeners.bubble...)
	}
	if wantCapture && wantBubble {
		sort.SliceStable(run, func(i, j int) bool { return run[i].seq < run[j].seq })
	}

	ev.CurrentTarget = n
	ev.immediateStopped = false
	for _, l := range run {
		if l.removed || l.Type != ev.Type {
			continue
		}
		if ev.immediateStopped {
			break
		}
		if l.Once {
			n.RemoveEventListener(l)
		}
		l.handler(ev)
	}
}
