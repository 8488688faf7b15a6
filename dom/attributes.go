package dom

import "strings"

// Attr is a single attribute. Name is stored lower-cased; Value is kept
// verbatim as parsed or assigned.
type Attr struct {
	Name  string
	Value string
}

// AttributeMap stores element attributes with case-insensitive lookup and
// insertion-ordered iteration. Serialization walks the order slice so output
// is stable across lookups.
type AttributeMap struct {
	attrs map[string]*Attr
	order []string
}

func NewAttributeMap() *AttributeMap {
	return &AttributeMap{attrs: map[string]*Attr{}}
}

func normalizeAttrName(name string) string {
	return strings.ToLower(name)
}

func (m *AttributeMap) Get(name string) (string, bool) {
	a, ok := m.attrs[normalizeAttrName(name)]
	if !ok {
		return "", false
	}
	return a.Value, true
}

// Set writes a value under the normalized name. A re-set keeps the
// attribute's original position in the order.
func (m *AttributeMap) Set(name, value string) (old string, existed bool) {
	key := normalizeAttrName(name)
	if a, ok := m.attrs[key]; ok {
		old = a.Value
		a.Value = value
		return old, true
	}
	m.attrs[key] = &Attr{Name: key, Value: value}
	m.order = append(m.order, key)
	return "", false
}

func (m *AttributeMap) Remove(name string) (old string, existed bool) {
	key := normalizeAttrName(name)
	a, ok := m.attrs[key]
	if !ok {
		return "", false
	}
	delete(m.attrs, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return a.Value, true
}

func (m *AttributeMap) Has(name string) bool {
	_, ok := m.attrs[normalizeAttrName(name)]
	return ok
}

func (m *AttributeMap) Len() int {
	return len(m.order)
}

// List returns the attributes in insertion order.
func (m *AttributeMap) List() []Attr {
	out := make([]Attr, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, *m.attrs[k])
	}
	return out
}

func (m *AttributeMap) clone() *AttributeMap {
	c := NewAttributeMap()
	for _, a := range m.List() {
		c.Set(a.Name, a.Value)
	}
	return c
}
