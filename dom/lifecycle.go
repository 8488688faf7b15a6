package dom

import "strings"

// Lifecycle is the callback set a host registers for a tag name. The tree
// invokes these as lifecycle events instead of relying on any subclassing
// mechanism. Every field is optional.
type Lifecycle struct {
	Construct        func(el *Node)
	Connected        func(el *Node)
	Disconnected     func(el *Node)
	AttributeChanged func(el *Node, name, oldValue, newValue string)
}

// Registry maps tag names to lifecycle callback sets. Each document owns
// exactly one registry; registries are never shared across documents.
type Registry struct {
	defs map[string]*Lifecycle
}

func newRegistry() *Registry {
	return &Registry{defs: map[string]*Lifecycle{}}
}

// Define registers a lifecycle for a custom tag name. Custom names must
// contain a dash and start with a lower-case letter.
func (r *Registry) Define(name string, lc *Lifecycle) error {
	if !validCustomName(name) {
		return newDOMError(InvalidCharacterError, "%q is not a valid custom element name", name)
	}
	r.defs[strings.ToUpper(name)] = lc
	return nil
}

// Get returns the lifecycle registered for a tag name, or nil.
func (r *Registry) Get(name string) *Lifecycle {
	return r.defs[strings.ToUpper(name)]
}

func validCustomName(name string) bool {
	if name == "" || !strings.Contains(name, "-") {
		return false
	}
	c := name[0]
	return c >= 'a' && c <= 'z'
}

func (r *Registry) lookup(n *Node) *Lifecycle {
	if r == nil || n.NodeType != ElementNode {
		return nil
	}
	return r.defs[n.TagName]
}

func (r *Registry) construct(n *Node) {
	if lc := r.lookup(n); lc != nil && lc.Construct != nil {
		lc.Construct(n)
	}
}

func (r *Registry) connected(n *Node) {
	if lc := r.lookup(n); lc != nil && lc.Connected != nil {
		lc.Connected(n)
	}
}

func (r *Registry) disconnected(n *Node) {
	if lc := r.lookup(n); lc != nil && lc.Disconnected != nil {
		lc.Disconnected(n)
	}
}

func (r *Registry) attributeChanged(n *Node, name, oldValue, newValue string) {
	if lc := r.lookup(n); lc != nil && lc.AttributeChanged != nil {
		lc.AttributeChanged(n, name, oldValue, newValue)
	}
}
