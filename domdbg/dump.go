// Package domdbg renders document subtrees as indented trees for debugging
// and test failure output.
package domdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/hollowdom/hollowdom/dom"
)

// Sprint renders n and its descendants as an ASCII tree.
func Sprint(n *dom.Node) string {
	tree := treeprint.NewWithRoot(label(n))
	for _, c := range n.ChildNodes {
		addNode(tree, c)
	}
	return tree.String()
}

// Fprint writes the rendering of n to w.
func Fprint(w io.Writer, n *dom.Node) {
	fmt.Fprint(w, Sprint(n))
}

func addNode(tree treeprint.Tree, n *dom.Node) {
	if len(n.ChildNodes) == 0 {
		tree.AddNode(label(n))
		return
	}
	branch := tree.AddBranch(label(n))
	for _, c := range n.ChildNodes {
		addNode(branch, c)
	}
}

// label is the one-line description of a node: tag#id.class for elements,
// quoted data for text, comment markers for comments.
func label(n *dom.Node) string {
	switch n.NodeType {
	case dom.ElementNode:
		var b strings.Builder
		b.WriteString(strings.ToLower(n.TagName))
		if id := n.GetAttribute("id"); id != "" {
			b.WriteString("#")
			b.WriteString(id)
		}
		for _, class := range n.ClassList().Values() {
			b.WriteString(".")
			b.WriteString(class)
		}
		return b.String()
	case dom.TextNode:
		return fmt.Sprintf("%q", n.NodeValue)
	case dom.CommentNode:
		return "<!-- " + n.NodeValue + " -->"
	case dom.DocumentNode:
		return "#document"
	case dom.DocumentFragmentNode:
		return "#fragment"
	default:
		return n.NodeName
	}
}
