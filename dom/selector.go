package dom

import (
	"strconv"
	"strings"
)

// Selector grammar: a comma-separated list of complex selectors; a complex
// selector is compounds joined by descendant (whitespace) or child (">")
// combinators; a compound is an optional tag name followed by #id, .class,
// [attr], [attr=value] and :pseudo-class parts.

type attrSelector struct {
	name     string
	value    string
	hasValue bool
}

type pseudoKind uint8

const (
	pseudoFirstChild pseudoKind = iota + 1
	pseudoLastChild
	pseudoNthChild
	pseudoNot
	pseudoDisabled
	pseudoEnabled
	pseudoChecked
	pseudoEmpty
)

type nthArg struct {
	index int // 1-indexed literal, when odd/even are false
	odd   bool
	even  bool
}

type pseudoSelector struct {
	kind  pseudoKind
	nth   nthArg
	inner *compoundSelector // for :not
}

type compoundSelector struct {
	tag     string // upper-cased; "" or "*" match any element
	ids     []string
	classes []string
	attrs   []attrSelector
	pseudos []pseudoSelector
}

type complexSelector struct {
	compounds   []compoundSelector
	combinators []byte // '>' or ' '; len == len(compounds)-1
}

type selectorList []complexSelector

// parseSelectorList splits on top-level commas and parses each complex
// selector. Any malformed component fails the whole selector.
func parseSelectorList(s string) (selectorList, error) {
	var list selectorList
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, newDOMError(SyntaxError, "empty selector in %q", s)
		}
		cx, err := parseComplex(part)
		if err != nil {
			return nil, err
		}
		list = append(list, cx)
	}
	if len(list) == 0 {
		return nil, newDOMError(SyntaxError, "empty selector")
	}
	return list, nil
}

// splitTopLevel splits on sep outside brackets, parens and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}

func parseComplex(s string) (complexSelector, error) {
	var cx complexSelector
	i := 0
	expectCompound := true
	pendingCombinator := byte(0)
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			if !expectCompound && pendingCombinator == 0 {
				pendingCombinator = ' '
			}
			i++
		case s[i] == '>':
			if expectCompound {
				return cx, newDOMError(SyntaxError, "misplaced combinator in %q", s)
			}
			pendingCombinator = '>'
			expectCompound = true
			i++
		default:
			start := i
			i = scanCompound(s, i)
			if i == start {
				return cx, newDOMError(SyntaxError, "unexpected %q in selector %q", s[i], s)
			}
			comp, err := parseCompound(s[start:i])
			if err != nil {
				return cx, err
			}
			if len(cx.compounds) > 0 {
				if pendingCombinator == 0 {
					pendingCombinator = ' '
				}
				cx.combinators = append(cx.combinators, pendingCombinator)
			}
			cx.compounds = append(cx.compounds, comp)
			pendingCombinator = 0
			expectCompound = false
		}
	}
	if len(cx.compounds) == 0 || expectCompound && pendingCombinator != 0 {
		return cx, newDOMError(SyntaxError, "incomplete selector %q", s)
	}
	return cx, nil
}

// scanCompound advances past one compound selector, honoring nesting in
// attribute brackets and pseudo-class parens.
func scanCompound(s string, i int) int {
	depth := 0
	var quote byte
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '>'):
			return i
		}
	}
	return i
}

func parseCompound(s string) (compoundSelector, error) {
	var comp compoundSelector
	i := 0
	// Optional leading tag name or universal selector.
	if i < len(s) && (isNameByte(s[i]) || s[i] == '*') {
		start := i
		if s[i] == '*' {
			i++
		} else {
			for i < len(s) && isNameByte(s[i]) {
				i++
			}
		}
		comp.tag = strings.ToUpper(s[start:i])
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			name, next, err := scanName(s, i+1)
			if err != nil {
				return comp, err
			}
			comp.ids = append(comp.ids, name)
			i = next
		case '.':
			name, next, err := scanName(s, i+1)
			if err != nil {
				return comp, err
			}
			comp.classes = append(comp.classes, name)
			i = next
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return comp, newDOMError(SyntaxError, "unterminated attribute selector in %q", s)
			}
			attr, err := parseAttrSelector(s[i+1 : i+end])
			if err != nil {
				return comp, err
			}
			comp.attrs = append(comp.attrs, attr)
			i += end + 1
		case ':':
			ps, next, err := parsePseudo(s, i+1)
			if err != nil {
				return comp, err
			}
			comp.pseudos = append(comp.pseudos, ps)
			i = next
		default:
			return comp, newDOMError(SyntaxError, "unexpected %q in selector %q", s[i], s)
		}
	}
	return comp, nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func scanName(s string, i int) (string, int, error) {
	start := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	if i == start {
		return "", i, newDOMError(SyntaxError, "missing name in selector %q", s)
	}
	return s[start:i], i, nil
}

func parseAttrSelector(s string) (attrSelector, error) {
	s = strings.TrimSpace(s)
	name, value, has := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrSelector{}, newDOMError(SyntaxError, "empty attribute name in selector")
	}
	a := attrSelector{name: normalizeAttrName(name)}
	if has {
		a.hasValue = true
		a.value = unquote(strings.TrimSpace(value))
	}
	return a, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func parsePseudo(s string, i int) (pseudoSelector, int, error) {
	name, next, err := scanName(s, i)
	if err != nil {
		return pseudoSelector{}, next, err
	}
	var arg string
	if next < len(s) && s[next] == '(' {
		depth := 1
		j := next + 1
		for ; j < len(s) && depth > 0; j++ {
			switch s[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth != 0 {
			return pseudoSelector{}, next, newDOMError(SyntaxError, "unterminated pseudo-class in %q", s)
		}
		arg = s[next+1 : j-1]
		next = j
	}

	switch strings.ToLower(name) {
	case "first-child":
		return pseudoSelector{kind: pseudoFirstChild}, next, nil
	case "last-child":
		return pseudoSelector{kind: pseudoLastChild}, next, nil
	case "disabled":
		return pseudoSelector{kind: pseudoDisabled}, next, nil
	case "enabled":
		return pseudoSelector{kind: pseudoEnabled}, next, nil
	case "checked":
		return pseudoSelector{kind: pseudoChecked}, next, nil
	case "empty":
		return pseudoSelector{kind: pseudoEmpty}, next, nil
	case "nth-child":
		nth, err := parseNthArg(arg)
		if err != nil {
			return pseudoSelector{}, next, err
		}
		return pseudoSelector{kind: pseudoNthChild, nth: nth}, next, nil
	case "not":
		inner, err := parseCompound(strings.TrimSpace(arg))
		if err != nil {
			return pseudoSelector{}, next, err
		}
		return pseudoSelector{kind: pseudoNot, inner: &inner}, next, nil
	}
	return pseudoSelector{}, next, newDOMError(SyntaxError, "unsupported pseudo-class :%s", name)
}

func parseNthArg(arg string) (nthArg, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "odd":
		return nthArg{odd: true}, nil
	case "even":
		return nthArg{even: true}, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || v < 1 {
		return nthArg{}, newDOMError(SyntaxError, "bad nth-child argument %q", arg)
	}
	return nthArg{index: v}, nil
}
