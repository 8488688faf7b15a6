package browser_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowdom/hollowdom/browser"
	"github.com/hollowdom/hollowdom/dom"
	"github.com/hollowdom/hollowdom/parser"
)

func TestNewWindowHasSkeleton(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	require.NotNil(t, w.Document.DocumentElement())
	require.NotNil(t, w.Document.Head())
	require.NotNil(t, w.Document.Body())
	assert.False(t, w.Loop.HasPending())
}

func TestOpenParsesMarkup(t *testing.T) {
	w := browser.Open(`<html><head><title>home</title></head><body><p id="greet">hi</p></body></html>`)
	defer w.Close()

	assert.Equal(t, "home", w.Document.Title())
	p := w.Document.GetElementByID("greet")
	require.NotNil(t, p)
	assert.Equal(t, "hi", p.TextContent())
}

func TestSetContentReplacesDocument(t *testing.T) {
	w := browser.Open(`<p id="old">before</p>`)
	defer w.Close()

	w.SetContent(`<p id="new">after</p>`)
	assert.Nil(t, w.Document.GetElementByID("old"))
	require.NotNil(t, w.Document.GetElementByID("new"))
}

func TestWaitForSelectorImmediateMatch(t *testing.T) {
	w := browser.Open(`<div class="ready">done</div>`)
	defer w.Close()

	n, err := w.WaitForSelector(".ready")
	require.NoError(t, err)
	assert.Equal(t, "done", n.TextContent())
}

func TestWaitForSelectorMatchesAfterScheduledWork(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	w.Loop.SetTimeout(func(...interface{}) {
		el := w.Document.CreateElement("div")
		el.SetAttribute("id", "late")
		w.Document.Body().AppendChild(el)
	}, 30*time.Millisecond)

	n, err := w.WaitForSelector("#late")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "DIV", n.TagName)
}

func TestWaitForSelectorTimesOut(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	_, err := w.WaitForSelector("#never")
	require.Error(t, err)
	assert.True(t, errors.Is(err, browser.ErrWaitTimeout))
}

func TestWaitForSelectorBadSelector(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	_, err := w.WaitForSelector("li:nth-child(")
	require.Error(t, err)
	assert.True(t, errors.Is(err, &dom.DOMError{Name: dom.SyntaxError}))
}

func TestWaitForFunctionSeesTimerEffects(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	var fired bool
	w.Loop.SetTimeout(func(...interface{}) { fired = true }, 10*time.Millisecond)

	require.NoError(t, w.WaitForFunction(func() bool { return fired }))
}

func TestWaitForFunctionAttemptBound(t *testing.T) {
	w := browser.NewWindow(browser.WithWaitAttempts(3))
	defer w.Close()

	calls := 0
	err := w.WaitForFunction(func() bool {
		calls++
		return false
	})
	require.Error(t, err)
	assert.LessOrEqual(t, calls, 4)
}

func TestWaitForTimeoutAdvancesClock(t *testing.T) {
	w := browser.NewWindow()
	defer w.Close()

	before := w.Loop.Now()
	w.WaitForTimeout(40 * time.Millisecond)
	assert.GreaterOrEqual(t, w.Loop.Now()-before, 40*time.Millisecond)
}

func TestClickBubblesAndCancels(t *testing.T) {
	w := browser.Open(`<div id="outer"><button id="btn">go</button></div>`)
	defer w.Close()

	outer := w.Document.GetElementByID("outer")
	btn := w.Document.GetElementByID("btn")
	require.NotNil(t, outer)
	require.NotNil(t, btn)

	var seen []string
	outer.AddEventListener("click", func(ev *dom.Event) {
		seen = append(seen, "outer")
	})
	btn.AddEventListener("click", func(ev *dom.Event) {
		seen = append(seen, "btn")
	})

	assert.True(t, w.Click(btn))
	assert.Equal(t, []string{"btn", "outer"}, seen)

	btn.AddEventListener("click", func(ev *dom.Event) { ev.PreventDefault() })
	assert.False(t, w.Click(btn))

	assert.False(t, w.Click(nil))
}

func TestCloseTearsDownLoopAndDocument(t *testing.T) {
	w := browser.Open(`<p>content</p>`)
	w.Loop.SetTimeout(func(...interface{}) { t.Fatal("must not run after close") }, time.Millisecond)

	w.Close()
	assert.True(t, w.Loop.Closed())
	assert.False(t, w.Loop.HasPending())
	assert.Empty(t, w.Document.Body().ChildNodes)
	assert.Error(t, w.WaitForFunction(func() bool { return true }))

	// Second close is a no-op.
	w.Close()
}

func TestWindowIsolation(t *testing.T) {
	w1 := browser.Open(`<p id="one">first</p>`)
	defer w1.Close()
	w2 := browser.Open(`<p id="two">second</p>`)
	defer w2.Close()

	assert.Nil(t, w1.Document.GetElementByID("two"))
	assert.Nil(t, w2.Document.GetElementByID("one"))

	// Independent timer ID sequences: each loop starts counting at 1.
	id1 := w1.Loop.SetTimeout(func(...interface{}) {}, 0)
	id2 := w2.Loop.SetTimeout(func(...interface{}) {}, 0)
	assert.Equal(t, id1, id2)

	// Document content stays serializable per window.
	assert.Equal(t, `<P id="two">second</P>`, parser.InnerHTML(w2.Document.Body()))

	var ran bool
	w2.Loop.SetTimeout(func(...interface{}) { ran = true }, 0)
	w2.Loop.Settle()
	assert.True(t, ran)
}
