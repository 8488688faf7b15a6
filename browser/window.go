// Package browser ties a document tree to a task loop behind a single
// Window handle, the way scripted pages see them together. Windows are
// fully isolated from each other; nothing is shared process-wide.
package browser

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hollowdom/hollowdom/dom"
	"github.com/hollowdom/hollowdom/eventloop"
	"github.com/hollowdom/hollowdom/parser"
)

// ErrWaitTimeout reports a wait helper that exhausted its attempt budget
// without the condition becoming true.
var ErrWaitTimeout = errors.New("browser: wait condition not met")

// defaultWaitAttempts bounds the drain-and-recheck cycles of the wait
// helpers. Each attempt settles the loop once, so a condition that a
// pending task will establish is normally seen on the first attempt.
const defaultWaitAttempts = 10

// Window owns one document and the loop its scheduled work runs on.
type Window struct {
	Document *dom.Document
	Loop     *eventloop.Loop

	log          *logrus.Entry
	waitAttempts int
	closed       bool
}

// Option configures a Window at construction time.
type Option func(*Window)

// WithLogger routes the window's diagnostics through the given logger.
func WithLogger(log *logrus.Logger) Option {
	return func(w *Window) {
		w.log = log.WithField("component", "window")
	}
}

// WithWaitAttempts overrides the settle-and-recheck budget of the wait
// helpers.
func WithWaitAttempts(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.waitAttempts = n
		}
	}
}

// NewWindow builds a window around a fresh document skeleton and an idle
// loop.
func NewWindow(opts ...Option) *Window {
	w := &Window{
		Document:     dom.NewDocument(),
		Loop:         eventloop.New(),
		log:          logrus.WithField("component", "window"),
		waitAttempts: defaultWaitAttempts,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Loop.OnError(func(err error) {
		w.log.WithError(err).Error("scheduled callback failed")
	})
	return w
}

// Open builds a window and parses markup into its document in one step.
func Open(markup string, opts ...Option) *Window {
	w := NewWindow(opts...)
	parser.ParseDocument(w.Document, markup)
	return w
}

// Close cancels all pending work and empties the document. The window is
// inert afterwards; scheduling and waits fail fast.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.Loop.Close()
	removeChildren(w.Document.Body())
	removeChildren(w.Document.Head())
}

// SetContent replaces the document content with the given markup.
func (w *Window) SetContent(markup string) {
	removeChildren(w.Document.Body())
	removeChildren(w.Document.Head())
	parser.ParseDocument(w.Document, markup)
}

func removeChildren(n *dom.Node) {
	for len(n.ChildNodes) > 0 {
		n.RemoveChild(n.ChildNodes[len(n.ChildNodes)-1])
	}
}

// WaitForSelector settles pending work until the selector matches,
// returning the matched node. Fails with ErrWaitTimeout once the attempt
// budget runs out, or with a SyntaxError for a malformed selector.
func (w *Window) WaitForSelector(selector string) (*dom.Node, error) {
	// Surface a malformed selector immediately instead of burning the
	// attempt budget on it.
	if _, err := w.Document.QuerySelector(selector); err != nil {
		return nil, err
	}
	var found *dom.Node
	err := w.WaitForFunction(func() bool {
		n, _ := w.Document.QuerySelector(selector)
		found = n
		return n != nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "selector %q", selector)
	}
	return found, nil
}

// WaitForFunction settles pending work until fn reports true.
func (w *Window) WaitForFunction(fn func() bool) error {
	if w.closed {
		return errors.New("browser: window is closed")
	}
	for attempt := 0; attempt < w.waitAttempts; attempt++ {
		if fn() {
			return nil
		}
		if !w.Loop.HasPending() {
			return ErrWaitTimeout
		}
		w.Loop.Settle()
	}
	if fn() {
		return nil
	}
	return ErrWaitTimeout
}

// WaitForTimeout schedules a one-shot delay and drains it, advancing the
// loop's clock by at least d.
func (w *Window) WaitForTimeout(d time.Duration) {
	if w.closed {
		return
	}
	w.Loop.SetTimeout(func(...interface{}) {}, d)
	w.Loop.Settle()
}

// Click relays a pointer activation to the element: a bubbling, cancelable
// click event. Reports false when a listener prevented the default.
func (w *Window) Click(el *dom.Node) bool {
	if el == nil {
		return false
	}
	return el.DispatchEvent(dom.NewEvent("click", true, true))
}
