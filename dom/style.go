package dom

import "strings"

// InlineStyle is a property view over its owner's style attribute,
// serialized as "prop: value;" pairs in insertion order. A removed property
// is dropped from the attribute rather than emitted empty.
type InlineStyle struct {
	owner *Node
}

type styleProp struct {
	name, value string
}

func (s *InlineStyle) props() []styleProp {
	var out []styleProp
	for _, decl := range strings.Split(s.owner.GetAttribute("style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		out = append(out, styleProp{name: name, value: value})
	}
	return out
}

func (s *InlineStyle) write(props []styleProp) {
	var b strings.Builder
	for _, p := range props {
		b.WriteString(p.name)
		b.WriteString(": ")
		b.WriteString(p.value)
		b.WriteString(";")
	}
	s.owner.SetAttribute("style", b.String())
}

func (s *InlineStyle) GetProperty(name string) string {
	for _, p := range s.props() {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// SetProperty writes a property, keeping the position of an existing one.
func (s *InlineStyle) SetProperty(name, value string) {
	props := s.props()
	for i := range props {
		if props[i].name == name {
			props[i].value = value
			s.write(props)
			return
		}
	}
	s.write(append(props, styleProp{name: name, value: value}))
}

func (s *InlineStyle) RemoveProperty(name string) {
	props := s.props()
	for i := range props {
		if props[i].name == name {
			s.write(append(props[:i], props[i+1:]...))
			return
		}
	}
}

func (s *InlineStyle) Length() int {
	return len(s.props())
}

func (s *InlineStyle) String() string {
	return s.owner.GetAttribute("style")
}
