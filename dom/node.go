package dom

import (
	"strings"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentFragmentNode
)

// NodeList is an ordered sequence of children. The slice is the only owning
// reference to a node; parent and sibling access go through back-pointers
// and index lookups that never own anything.
type NodeList []*Node

func (l NodeList) IndexOf(n *Node) int {
	for i := range l {
		if l[i] == n {
			return i
		}
	}
	return -1
}

// Node is the single concrete node representation. NodeType discriminates
// the variant; Element is populated for element nodes only.
type Node struct {
	NodeType      NodeType
	NodeName      string
	NodeValue     string
	OwnerDocument *Document
	ParentNode    *Node
	ChildNodes    NodeList

	*Element

	listeners *listenerStore
}

// Element is the payload carried by element nodes.
type Element struct {
	TagName    string
	Attributes *AttributeMap

	classList *ClassList
	style     *InlineStyle
}

func newElementNode(od *Document, tag string) *Node {
	name := strings.ToUpper(tag)
	return &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			TagName:    name,
			Attributes: NewAttributeMap(),
		},
	}
}

func newTextNode(od *Document, text string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		NodeValue:     text,
		OwnerDocument: od,
	}
}

func newCommentNode(od *Document, text string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		NodeValue:     text,
		OwnerDocument: od,
	}
}

func newFragmentNode(od *Document) *Node {
	return &Node{
		NodeType:      DocumentFragmentNode,
		NodeName:      "#document-fragment",
		OwnerDocument: od,
	}
}

func (n *Node) FirstChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[0]
}

func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

func (n *Node) NextSibling() *Node {
	if n.ParentNode == nil {
		return nil
	}
	i := n.ParentNode.ChildNodes.IndexOf(n)
	if i < 0 || i+1 >= len(n.ParentNode.ChildNodes) {
		return nil
	}
	return n.ParentNode.ChildNodes[i+1]
}

func (n *Node) PreviousSibling() *Node {
	if n.ParentNode == nil {
		return nil
	}
	i := n.ParentNode.ChildNodes.IndexOf(n)
	if i <= 0 {
		return nil
	}
	return n.ParentNode.ChildNodes[i-1]
}

// Children returns the element-only child view, as opposed to ChildNodes
// which includes text and comment nodes.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, c := range n.ChildNodes {
		if c.NodeType == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) FirstElementChild() *Node {
	for _, c := range n.ChildNodes {
		if c.NodeType == ElementNode {
			return c
		}
	}
	return nil
}

func (n *Node) LastElementChild() *Node {
	for i := len(n.ChildNodes) - 1; i >= 0; i-- {
		if n.ChildNodes[i].NodeType == ElementNode {
			return n.ChildNodes[i]
		}
	}
	return nil
}

func (n *Node) NextElementSibling() *Node {
	for s := n.NextSibling(); s != nil; s = s.NextSibling() {
		if s.NodeType == ElementNode {
			return s
		}
	}
	return nil
}

func (n *Node) PreviousElementSibling() *Node {
	for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		if s.NodeType == ElementNode {
			return s
		}
	}
	return nil
}

func (n *Node) Root() *Node {
	r := n
	for r.ParentNode != nil {
		r = r.ParentNode
	}
	return r
}

// Connected reports whether the node is attached under its owner document.
func (n *Node) Connected() bool {
	return n.OwnerDocument != nil && n.Root() == n.OwnerDocument.Node
}

func (n *Node) Contains(other *Node) bool {
	for c := other; c != nil; c = c.ParentNode {
		if c == n {
			return true
		}
	}
	return false
}

// AppendChild attaches child as the last child of n. An already-attached
// child is detached first, including from n itself, so re-appending moves
// the child to the end instead of duplicating the reference.
func (n *Node) AppendChild(child *Node) *Node {
	n.insertAt(child, len(n.ChildNodes))
	return child
}

// InsertBefore inserts child before ref. A nil ref appends. A ref that is
// not a child of n is a usage error.
func (n *Node) InsertBefore(child, ref *Node) (*Node, error) {
	if ref == nil {
		return n.AppendChild(child), nil
	}
	i := n.ChildNodes.IndexOf(ref)
	if i < 0 {
		return nil, newDOMError(NotFoundError, "reference node is not a child of %s", n.NodeName)
	}
	n.insertAt(child, i)
	return child, nil
}

// RemoveChild detaches child from n. A node that is not currently a child
// is tolerated and returned unchanged.
func (n *Node) RemoveChild(child *Node) *Node {
	i := n.ChildNodes.IndexOf(child)
	if i < 0 {
		return child
	}
	wasConnected := child.Connected()
	n.ChildNodes = append(n.ChildNodes[:i], n.ChildNodes[i+1:]...)
	child.ParentNode = nil
	if doc := n.OwnerDocument; doc != nil {
		doc.committedRemove(n, child, wasConnected)
	}
	return child
}

// ReplaceChild swaps newChild into oldChild's position and detaches
// oldChild, preserving document order.
func (n *Node) ReplaceChild(newChild, oldChild *Node) (*Node, error) {
	i := n.ChildNodes.IndexOf(oldChild)
	if i < 0 {
		return nil, newDOMError(NotFoundError, "node to replace is not a child of %s", n.NodeName)
	}
	if _, err := n.InsertBefore(newChild, oldChild); err != nil {
		return nil, err
	}
	n.RemoveChild(oldChild)
	return oldChild, nil
}

// insertAt is the single attach path: detach from any current parent, then
// splice into the child list at index i (computed against the list after
// the detach).
func (n *Node) insertAt(child *Node, i int) {
	if child.ParentNode != nil {
		old := child.ParentNode.ChildNodes.IndexOf(child)
		if child.ParentNode == n && old >= 0 && old < i {
			i--
		}
		child.ParentNode.RemoveChild(child)
	}
	if i > len(n.ChildNodes) {
		i = len(n.ChildNodes)
	}
	n.ChildNodes = append(n.ChildNodes, nil)
	copy(n.ChildNodes[i+1:], n.ChildNodes[i:])
	n.ChildNodes[i] = child
	child.ParentNode = n
	if doc := n.OwnerDocument; doc != nil {
		doc.committedInsert(n, child)
	}
}

// CloneNode copies the node. A shallow clone of an element copies tag and
// attributes but no children; a deep clone recurses. Clones never share
// state with the original.
func (n *Node) CloneNode(deep bool) *Node {
	var c *Node
	switch n.NodeType {
	case ElementNode:
		c = newElementNode(n.OwnerDocument, n.TagName)
		c.Element.Attributes = n.Attributes.clone()
	case TextNode:
		c = newTextNode(n.OwnerDocument, n.NodeValue)
	case CommentNode:
		c = newCommentNode(n.OwnerDocument, n.NodeValue)
	case DocumentFragmentNode:
		c = newFragmentNode(n.OwnerDocument)
	default:
		c = &Node{NodeType: n.NodeType, NodeName: n.NodeName, OwnerDocument: n.OwnerDocument}
	}
	if deep {
		for _, child := range n.ChildNodes {
			c.AppendChild(child.CloneNode(true))
		}
	}
	return c
}

// TextContent concatenates every descendant text payload in document order.
func (n *Node) TextContent() string {
	if n.NodeType == TextNode || n.NodeType == CommentNode {
		return n.NodeValue
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(m *Node) {
		for _, c := range m.ChildNodes {
			if c.NodeType == TextNode {
				b.WriteString(c.NodeValue)
				continue
			}
			if c.NodeType == ElementNode || c.NodeType == DocumentFragmentNode {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// SetTextContent removes all children and installs a single text node
// holding s, also when s is empty.
func (n *Node) SetTextContent(s string) {
	if n.NodeType == TextNode || n.NodeType == CommentNode {
		n.SetNodeValue(s)
		return
	}
	for len(n.ChildNodes) > 0 {
		n.RemoveChild(n.ChildNodes[len(n.ChildNodes)-1])
	}
	n.AppendChild(newTextNode(n.OwnerDocument, s))
}

// SetNodeValue rewrites a text or comment payload and reports the change.
func (n *Node) SetNodeValue(s string) {
	old := n.NodeValue
	n.NodeValue = s
	if doc := n.OwnerDocument; doc != nil {
		doc.notify(MutationRecord{Kind: CharacterDataChanged, Node: n, OldValue: old, NewValue: s})
	}
}

// walk visits n and every descendant in document order (pre-order). The
// visitor returns false to stop the traversal.
func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.ChildNodes {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

// walkDescendants visits descendants of n only, in document order.
func (n *Node) walkDescendants(visit func(*Node) bool) {
	for _, c := range n.ChildNodes {
		if !c.walk(visit) {
			return
		}
	}
}
