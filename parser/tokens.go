package parser

import "strings"

type tokenType uint

const (
	textToken tokenType = iota
	startTagToken
	endTagToken
	commentToken
	endOfFileToken
)

// TokenAttr is one parsed attribute. Order of appearance is preserved so
// serialization round-trips in source order.
type TokenAttr struct {
	Name  string
	Value string
}

// Token is a concrete token ready to be handed to the tree builder.
type Token struct {
	TokenType   tokenType
	TagName     string
	Attributes  []TokenAttr
	SelfClosing bool
	Data        string
}

// tokenBuilder accumulates one tag, text run or comment during
// tokenization.
type tokenBuilder struct {
	name        strings.Builder
	data        strings.Builder
	attrName    strings.Builder
	attrValue   strings.Builder
	attrs       []TokenAttr
	seenAttrs   map[string]bool
	selfClosing bool
}

func newTokenBuilder() *tokenBuilder {
	return &tokenBuilder{seenAttrs: map[string]bool{}}
}

// newTag resets every tag-scoped accumulator.
func (b *tokenBuilder) newTag() {
	b.name.Reset()
	b.attrName.Reset()
	b.attrValue.Reset()
	b.attrs = nil
	b.seenAttrs = map[string]bool{}
	b.selfClosing = false
}

// commitAttr stores the pending attribute. The first occurrence of a name
// wins; names are lower-cased.
func (b *tokenBuilder) commitAttr() {
	name := strings.ToLower(b.attrName.String())
	if name != "" && !b.seenAttrs[name] {
		b.seenAttrs[name] = true
		b.attrs = append(b.attrs, TokenAttr{Name: name, Value: b.attrValue.String()})
	}
	b.attrName.Reset()
	b.attrValue.Reset()
}

func (b *tokenBuilder) startTag() Token {
	b.commitAttr()
	return Token{
		TokenType:   startTagToken,
		TagName:     strings.ToLower(b.name.String()),
		Attributes:  b.attrs,
		SelfClosing: b.selfClosing,
	}
}

func (b *tokenBuilder) endTag() Token {
	return Token{TokenType: endTagToken, TagName: strings.ToLower(b.name.String())}
}

func (b *tokenBuilder) comment() Token {
	t := Token{TokenType: commentToken, Data: b.data.String()}
	b.data.Reset()
	return t
}
