package domxpath

import (
	"fmt"

	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/hollowdom/hollowdom/dom"
)

// ResultType selects the shape Evaluate returns.
type ResultType int

const (
	// FirstNode yields the first matching node in document order, or nil.
	FirstNode ResultType = iota
	// Snapshot yields a stable, fully materialized node list.
	Snapshot
	// Iterator yields a forward-only cursor over the matches.
	Iterator
	// Number yields the numeric value of the expression, e.g. count(//li).
	Number
)

// Expr is a compiled path expression, reusable across documents.
type Expr struct {
	src      string
	compiled *xpath.Expr
}

// Compile parses a path expression. Malformed expressions report a
// SyntaxError DOMError carrying the engine's diagnostic.
func Compile(expr string) (*Expr, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		domErr := &dom.DOMError{Name: dom.SyntaxError, Message: fmt.Sprintf("invalid expression %q", expr)}
		return nil, errors.Wrapf(domErr, "%v", err)
	}
	return &Expr{src: expr, compiled: compiled}, nil
}

// MustCompile is Compile for expressions known good at program start.
func MustCompile(expr string) *Expr {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the source expression.
func (e *Expr) String() string {
	return e.src
}

// Result holds the outcome of an evaluation in the shape the caller asked
// for. Only the accessors matching the requested ResultType return data.
type Result struct {
	Type  ResultType
	nodes []*dom.Node
	iter  *xpath.NodeIterator
	num   float64
}

// SingleNode returns the first match, or nil. Valid for FirstNode results.
func (r *Result) SingleNode() *dom.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// SnapshotLength reports the match count of a Snapshot result.
func (r *Result) SnapshotLength() int {
	return len(r.nodes)
}

// SnapshotItem returns the i-th match of a Snapshot result, nil out of range.
func (r *Result) SnapshotItem(i int) *dom.Node {
	if i < 0 || i >= len(r.nodes) {
		return nil
	}
	return r.nodes[i]
}

// IterateNext advances an Iterator result and returns the next match, nil
// once exhausted.
func (r *Result) IterateNext() *dom.Node {
	if r.iter == nil || !r.iter.MoveNext() {
		return nil
	}
	nav, ok := r.iter.Current().(*nodeNavigator)
	if !ok || nav.attr != -1 {
		return nil
	}
	return nav.current
}

// NumberValue returns the numeric value of a Number result.
func (r *Result) NumberValue() float64 {
	return r.num
}

// Evaluate runs the compiled expression with context as the traversal root.
func (e *Expr) Evaluate(context *dom.Node, typ ResultType) (*Result, error) {
	if context == nil {
		return nil, errors.New("domxpath: nil context node")
	}
	nav := newNavigator(context)
	res := &Result{Type: typ}
	switch typ {
	case Number:
		switch v := e.compiled.Evaluate(nav.Copy()).(type) {
		case float64:
			res.num = v
		case bool:
			if v {
				res.num = 1
			}
		case *xpath.NodeIterator:
			for v.MoveNext() {
				res.num++
			}
		}
		return res, nil
	case Iterator:
		res.iter = e.compiled.Select(nav)
		return res, nil
	case FirstNode:
		it := e.compiled.Select(nav)
		if it.MoveNext() {
			if n, ok := it.Current().(*nodeNavigator); ok && n.attr == -1 {
				res.nodes = append(res.nodes, n.current)
			}
		}
		return res, nil
	case Snapshot:
		it := e.compiled.Select(nav)
		for it.MoveNext() {
			n, ok := it.Current().(*nodeNavigator)
			if !ok || n.attr != -1 {
				continue
			}
			res.nodes = append(res.nodes, n.current)
		}
		return res, nil
	default:
		return nil, errors.Errorf("domxpath: unknown result type %d", typ)
	}
}

// Evaluate compiles and runs expr in one step.
func Evaluate(expr string, context *dom.Node, typ ResultType) (*Result, error) {
	e, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(context, typ)
}
