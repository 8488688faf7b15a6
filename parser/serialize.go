package parser

import (
	"strings"

	"github.com/hollowdom/hollowdom/dom"
)

// OuterHTML serializes the node and its subtree. Attribute values are
// emitted verbatim, embedded quotes included; re-parsing such output is
// lossy and that is accepted behavior.
func OuterHTML(n *dom.Node) string {
	var b strings.Builder
	serializeNode(&b, n)
	return b.String()
}

// InnerHTML serializes the node's children only.
func InnerHTML(n *dom.Node) string {
	var b strings.Builder
	for _, c := range n.ChildNodes {
		serializeNode(&b, c)
	}
	return b.String()
}

func serializeNode(b *strings.Builder, n *dom.Node) {
	switch n.NodeType {
	case dom.ElementNode:
		b.WriteByte('<')
		b.WriteString(n.TagName)
		for _, a := range n.Attributes.List() {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(a.Value)
			b.WriteByte('"')
		}
		if voidElements[n.TagName] {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.ChildNodes {
			serializeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.TagName)
		b.WriteByte('>')
	case dom.TextNode:
		b.WriteString(n.NodeValue)
	case dom.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.NodeValue)
		b.WriteString("-->")
	case dom.DocumentNode, dom.DocumentFragmentNode:
		for _, c := range n.ChildNodes {
			serializeNode(b, c)
		}
	}
}

// SetInnerHTML destroys the element's children and installs the parse of
// the assigned markup as the new child forest.
func SetInnerHTML(el *dom.Node, markup string) {
	for len(el.ChildNodes) > 0 {
		el.RemoveChild(el.ChildNodes[len(el.ChildNodes)-1])
	}
	for _, n := range ParseFragment(el.OwnerDocument, markup) {
		el.AppendChild(n)
	}
}

// SetOuterHTML replaces the element itself, in its position among its
// siblings, with the parse of the assigned markup. A detached element is
// left alone.
func SetOuterHTML(el *dom.Node, markup string) {
	parent := el.ParentNode
	if parent == nil {
		return
	}
	for _, n := range ParseFragment(el.OwnerDocument, markup) {
		_, _ = parent.InsertBefore(n, el)
	}
	parent.RemoveChild(el)
}
