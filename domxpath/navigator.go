// Package domxpath evaluates path-style queries against a document tree.
// The evaluator is github.com/antchfx/xpath; this package adapts the node
// model to its NodeNavigator interface and shapes results into the single
// node, snapshot, iterator and number forms callers pick from.
package domxpath

import (
	"strings"

	"github.com/antchfx/xpath"

	"github.com/hollowdom/hollowdom/dom"
)

// nodeNavigator walks one subtree for the xpath engine. The navigator's
// root is the evaluation context node; traversal never escapes it, which is
// what scopes descendant queries to a subtree.
type nodeNavigator struct {
	root, current *dom.Node
	attr          int // index into the current element's attributes, -1 when on the node itself
}

func newNavigator(n *dom.Node) *nodeNavigator {
	return &nodeNavigator{root: n, current: n, attr: -1}
}

func (nav *nodeNavigator) NodeType() xpath.NodeType {
	switch nav.current.NodeType {
	case dom.DocumentNode, dom.DocumentFragmentNode:
		return xpath.RootNode
	case dom.TextNode:
		return xpath.TextNode
	case dom.CommentNode:
		return xpath.CommentNode
	default:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	}
}

func (nav *nodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.current.Attributes.List()[nav.attr].Name
	}
	if nav.current.NodeType == dom.ElementNode {
		// Tag names are stored upper-cased; path expressions use the
		// conventional lower-case form.
		return strings.ToLower(nav.current.TagName)
	}
	return ""
}

func (*nodeNavigator) Prefix() string {
	return ""
}

func (nav *nodeNavigator) Value() string {
	switch nav.current.NodeType {
	case dom.TextNode, dom.CommentNode:
		return nav.current.NodeValue
	case dom.ElementNode:
		if nav.attr != -1 {
			return nav.current.Attributes.List()[nav.attr].Value
		}
		return nav.current.TextContent()
	default:
		return nav.current.TextContent()
	}
}

func (nav *nodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *nodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *nodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1
		return true
	}
	if nav.current == nav.root || nav.current.ParentNode == nil {
		return false
	}
	nav.current = nav.current.ParentNode
	return true
}

func (nav *nodeNavigator) MoveToNextAttribute() bool {
	if nav.current.NodeType != dom.ElementNode {
		return false
	}
	if nav.attr >= nav.current.Attributes.Len()-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *nodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if c := nav.current.FirstChild(); c != nil {
		nav.current = c
		return true
	}
	return false
}

func (nav *nodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	if nav.current.ParentNode == nil {
		return false
	}
	nav.current = nav.current.ParentNode.ChildNodes[0]
	return true
}

func (nav *nodeNavigator) MoveToNext() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	if s := nav.current.NextSibling(); s != nil {
		nav.current = s
		return true
	}
	return false
}

func (nav *nodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	if s := nav.current.PreviousSibling(); s != nil {
		nav.current = s
		return true
	}
	return false
}

func (nav *nodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*nodeNavigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.current = o.current
	nav.attr = o.attr
	return true
}

func (nav *nodeNavigator) String() string {
	return nav.Value()
}

var _ xpath.NodeNavigator = (*nodeNavigator)(nil)
