package dom

import "fmt"

// DOMError is the error kind shared by the tree, the selector engine and the
// custom element registry. Callers match on Name.
type DOMError struct {
	Name    string
	Message string
}

const (
	// NotFoundError signals an operation that referenced a node which is not
	// where the caller said it was, e.g. InsertBefore with a reference node
	// that is not a child of the parent.
	NotFoundError = "NotFoundError"
	// SyntaxError signals an unparseable selector or path expression.
	SyntaxError = "SyntaxError"
	// InvalidCharacterError signals a malformed custom element name.
	InvalidCharacterError = "InvalidCharacterError"
)

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is makes DOMError values matchable with errors.Is against a bare
// &DOMError{Name: ...} sentinel.
func (e *DOMError) Is(target error) bool {
	t, ok := target.(*DOMError)
	if !ok {
		return false
	}
	return t.Name == e.Name
}

func newDOMError(name, format string, args ...interface{}) *DOMError {
	return &DOMError{Name: name, Message: fmt.Sprintf(format, args...)}
}
