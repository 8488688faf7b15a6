package parser

import (
	"strings"

	"github.com/hollowdom/hollowdom/dom"
)

// voidElements never take children and serialize without a closing tag. The
// parser treats them as self-closing whether or not the source carries a
// trailing slash.
var voidElements = map[string]bool{
	"AREA":   true,
	"BASE":   true,
	"BR":     true,
	"COL":    true,
	"EMBED":  true,
	"HR":     true,
	"IMG":    true,
	"INPUT":  true,
	"LINK":   true,
	"META":   true,
	"PARAM":  true,
	"SOURCE": true,
	"TRACK":  true,
	"WBR":    true,
}

// treeBuilder consumes the token stream and grows a subtree under anchor.
// It keeps a stack of open elements; the insertion point is the stack top,
// or the anchor while the stack is empty.
type treeBuilder struct {
	doc          *dom.Document
	anchor       *dom.Node
	openElements []*dom.Node
	document     bool // document mode maps html/head/body onto the skeleton
}

func (b *treeBuilder) insertionPoint() *dom.Node {
	if n := len(b.openElements); n > 0 {
		return b.openElements[n-1]
	}
	return b.anchor
}

func (b *treeBuilder) processToken(t Token) {
	switch t.TokenType {
	case textToken:
		b.insertionPoint().AppendChild(b.doc.CreateTextNode(t.Data))
	case commentToken:
		b.insertionPoint().AppendChild(b.doc.CreateComment(t.Data))
	case startTagToken:
		b.processStartTag(t)
	case endTagToken:
		b.processEndTag(t)
	case endOfFileToken:
		// Unclosed tags close implicitly at end of input.
		b.openElements = b.openElements[:0]
	}
}

func (b *treeBuilder) processStartTag(t Token) {
	if b.document {
		switch t.TagName {
		case "html":
			mergeAttributes(b.doc.DocumentElement(), t)
			return
		case "head":
			mergeAttributes(b.doc.Head(), t)
			b.anchor = b.doc.Head()
			return
		case "body":
			mergeAttributes(b.doc.Body(), t)
			b.anchor = b.doc.Body()
			return
		}
	}
	el := b.doc.CreateElement(t.TagName)
	for _, a := range t.Attributes {
		el.SetAttribute(a.Name, a.Value)
	}
	b.insertionPoint().AppendChild(el)
	if !voidElements[el.TagName] {
		// Non-void elements stay open even with a trailing slash in the
		// source; only the void set is self-closing.
		b.openElements = append(b.openElements, el)
	}
}

func (b *treeBuilder) processEndTag(t Token) {
	if b.document {
		switch t.TagName {
		case "html", "body":
			b.anchor = b.doc.Body()
			b.openElements = b.openElements[:0]
			return
		case "head":
			b.anchor = b.doc.Body()
			b.openElements = b.openElements[:0]
			return
		}
	}
	want := strings.ToUpper(t.TagName)
	for i := len(b.openElements) - 1; i >= 0; i-- {
		if b.openElements[i].TagName == want {
			b.openElements = b.openElements[:i]
			return
		}
	}
	// Unmatched close tag: ignored.
}

func mergeAttributes(el *dom.Node, t Token) {
	if el == nil {
		return
	}
	for _, a := range t.Attributes {
		if !el.HasAttribute(a.Name) {
			el.SetAttribute(a.Name, a.Value)
		}
	}
}

// ParseFragment parses markup into a forest of sibling nodes owned by a
// document fragment. The forest is returned in source order.
func ParseFragment(doc *dom.Document, input string) []*dom.Node {
	frag := doc.CreateDocumentFragment()
	b := &treeBuilder{doc: doc, anchor: frag}
	for _, t := range NewHTMLTokenizer(input).Tokenize() {
		b.processToken(t)
	}
	out := make([]*dom.Node, len(frag.ChildNodes))
	copy(out, frag.ChildNodes)
	return out
}

// ParseDocument parses markup into an existing document. html, head and
// body tags map onto the document skeleton (attributes merged, first write
// wins); all other content lands under head or body depending on the
// insertion point the source has reached.
func ParseDocument(doc *dom.Document, input string) {
	b := &treeBuilder{doc: doc, anchor: doc.Body(), document: true}
	for _, t := range NewHTMLTokenizer(input).Tokenize() {
		b.processToken(t)
	}
}
