package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	markupDeclarationOpenState
	commentState
	bogusCommentState
)

// HTMLTokenizer splits markup text into tag, text and comment tokens. It is
// a character-at-a-time state machine; malformed input never aborts it,
// the offending span degrades to literal text or a bogus comment.
type HTMLTokenizer struct {
	input        []rune
	pos          int
	state        tokenizerState
	tokenBuilder *tokenBuilder
	emitted      []Token
	text         strings.Builder
	dashRun      int
	endTag       bool
}

func NewHTMLTokenizer(input string) *HTMLTokenizer {
	return &HTMLTokenizer{
		input:        []rune(input),
		state:        dataState,
		tokenBuilder: newTokenBuilder(),
	}
}

type stateHandler func(r rune, eof bool) (reconsume bool, next tokenizerState)

func (p *HTMLTokenizer) stateToParser(state tokenizerState) stateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentState:
		return p.commentStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	}
	return p.dataStateParser
}

// Tokenize runs the machine over the whole input and returns the token
// stream, terminated by an end-of-file token.
func (p *HTMLTokenizer) Tokenize() []Token {
	for p.pos <= len(p.input) {
		var r rune
		eof := p.pos == len(p.input)
		if !eof {
			r = p.input[p.pos]
		}
		reconsume, next := p.stateToParser(p.state)(r, eof)
		p.state = next
		if eof {
			break
		}
		if !reconsume {
			p.pos++
		}
	}
	p.flushText()
	p.emitted = append(p.emitted, Token{TokenType: endOfFileToken})
	return p.emitted
}

func (p *HTMLTokenizer) emit(t Token) {
	p.flushText()
	p.emitted = append(p.emitted, t)
}

func (p *HTMLTokenizer) flushText() {
	if p.text.Len() == 0 {
		return
	}
	p.emitted = append(p.emitted, Token{TokenType: textToken, Data: p.text.String()})
	p.text.Reset()
}

func (p *HTMLTokenizer) emitTag() {
	if p.endTag {
		p.emit(p.tokenBuilder.endTag())
		return
	}
	p.emit(p.tokenBuilder.startTag())
}

func isASCIILetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '<' {
		return false, tagOpenState
	}
	p.text.WriteRune(r)
	return false, dataState
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		// Dangling "<" at end of input is literal text.
		p.text.WriteRune('<')
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIILetter(r):
		p.tokenBuilder.newTag()
		p.endTag = false
		return true, tagNameState
	default:
		logrus.WithField("at", p.pos).Debug("tokenizer: '<' not opening a tag, treating as text")
		p.text.WriteRune('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.text.WriteString("</")
		return false, dataState
	}
	switch {
	case isASCIILetter(r):
		p.tokenBuilder.newTag()
		p.endTag = true
		return true, tagNameState
	case r == '>':
		return false, dataState
	default:
		p.tokenBuilder.data.Reset()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		p.emitTag()
		return false, dataState
	default:
		p.tokenBuilder.name.WriteRune(r)
		return false, tagNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		p.emitTag()
		return false, dataState
	default:
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '/':
		p.tokenBuilder.commitAttr()
		return false, selfClosingStartTagState
	case r == '>':
		p.tokenBuilder.commitAttr()
		p.emitTag()
		return false, dataState
	default:
		p.tokenBuilder.attrName.WriteRune(r)
		return false, attributeNameState
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '/':
		p.tokenBuilder.commitAttr()
		return false, selfClosingStartTagState
	case r == '>':
		p.tokenBuilder.commitAttr()
		p.emitTag()
		return false, dataState
	default:
		// Valueless attribute followed by another attribute.
		p.tokenBuilder.commitAttr()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		p.tokenBuilder.commitAttr()
		p.emitTag()
		return false, dataState
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '"' {
		p.tokenBuilder.commitAttr()
		return false, afterAttributeValueQuotedState
	}
	// Verbatim capture between the delimiters, entities included.
	p.tokenBuilder.attrValue.WriteRune(r)
	return false, attributeValueDoubleQuotedState
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '\'' {
		p.tokenBuilder.commitAttr()
		return false, afterAttributeValueQuotedState
	}
	p.tokenBuilder.attrValue.WriteRune(r)
	return false, attributeValueSingleQuotedState
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		p.tokenBuilder.commitAttr()
		return false, beforeAttributeNameState
	case r == '>':
		p.tokenBuilder.commitAttr()
		p.emitTag()
		return false, dataState
	default:
		p.tokenBuilder.attrValue.WriteRune(r)
		return false, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		p.emitTag()
		return false, dataState
	default:
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '>' {
		p.tokenBuilder.selfClosing = true
		p.emitTag()
		return false, dataState
	}
	return true, beforeAttributeNameState
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '-' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '-' {
		p.pos++ // consume the second dash
		p.tokenBuilder.data.Reset()
		p.dashRun = 0
		return false, commentState
	}
	// DOCTYPE and other declarations degrade to a bogus comment.
	p.tokenBuilder.data.Reset()
	return true, bogusCommentState
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.comment())
		return false, dataState
	}
	switch {
	case r == '-':
		p.dashRun++
		return false, commentState
	case r == '>' && p.dashRun >= 2:
		// Trim the terminator dashes that were buffered as a run.
		data := p.tokenBuilder.data.String()
		p.tokenBuilder.data.Reset()
		p.tokenBuilder.data.WriteString(data + strings.Repeat("-", p.dashRun-2))
		p.dashRun = 0
		p.emit(p.tokenBuilder.comment())
		return false, dataState
	default:
		for ; p.dashRun > 0; p.dashRun-- {
			p.tokenBuilder.data.WriteRune('-')
		}
		p.tokenBuilder.data.WriteRune(r)
		return false, commentState
	}
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return false, dataState
	}
	if r == '>' {
		return false, dataState
	}
	return false, bogusCommentState
}
