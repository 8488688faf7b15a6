package dom

// formAssociated are the tags :disabled and :enabled apply to.
var formAssociated = map[string]bool{
	"INPUT":    true,
	"BUTTON":   true,
	"SELECT":   true,
	"TEXTAREA": true,
	"OPTION":   true,
	"OPTGROUP": true,
	"FIELDSET": true,
}

// Matches reports whether the element matches the selector. Non-element
// nodes never match.
func (n *Node) Matches(selector string) (bool, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return false, err
	}
	return list.matches(n), nil
}

// QuerySelector returns the first descendant of n matching the selector in
// document order, or nil.
func (n *Node) QuerySelector(selector string) (*Node, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var found *Node
	n.walkDescendants(func(c *Node) bool {
		if list.matches(c) {
			found = c
			return false
		}
		return true
	})
	return found, nil
}

// QuerySelectorAll returns every matching descendant of n in document
// order. The search never leaves n's subtree.
func (n *Node) QuerySelectorAll(selector string) ([]*Node, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var out []*Node
	n.walkDescendants(func(c *Node) bool {
		if list.matches(c) {
			out = append(out, c)
		}
		return true
	})
	return out, nil
}

// Closest walks upward from n itself through its ancestors and returns the
// first element matching the selector, or nil.
func (n *Node) Closest(selector string) (*Node, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	for c := n; c != nil; c = c.ParentNode {
		if list.matches(c) {
			return c, nil
		}
	}
	return nil, nil
}

func (list selectorList) matches(n *Node) bool {
	if n.NodeType != ElementNode {
		return false
	}
	for i := range list {
		if matchComplexAt(n, &list[i], len(list[i].compounds)-1) {
			return true
		}
	}
	return false
}

// matchComplexAt matches right to left: the compound at idx must match n,
// and the rest of the chain must match along the ancestor axis selected by
// the combinator.
func matchComplexAt(n *Node, cx *complexSelector, idx int) bool {
	if !matchCompound(n, &cx.compounds[idx]) {
		return false
	}
	if idx == 0 {
		return true
	}
	switch cx.combinators[idx-1] {
	case '>':
		p := n.ParentNode
		return p != nil && p.NodeType == ElementNode && matchComplexAt(p, cx, idx-1)
	default: // descendant
		for p := n.ParentNode; p != nil; p = p.ParentNode {
			if p.NodeType == ElementNode && matchComplexAt(p, cx, idx-1) {
				return true
			}
		}
		return false
	}
}

func matchCompound(n *Node, c *compoundSelector) bool {
	if n.NodeType != ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && n.TagName != c.tag {
		return false
	}
	for _, id := range c.ids {
		if n.GetAttribute("id") != id {
			return false
		}
	}
	for _, class := range c.classes {
		if !n.ClassList().Contains(class) {
			return false
		}
	}
	for i := range c.attrs {
		a := &c.attrs[i]
		if !n.Attributes.Has(a.name) {
			return false
		}
		if a.hasValue {
			v, _ := n.Attributes.Get(a.name)
			if v != a.value {
				return false
			}
		}
	}
	for i := range c.pseudos {
		if !matchPseudo(n, &c.pseudos[i]) {
			return false
		}
	}
	return true
}

func matchPseudo(n *Node, p *pseudoSelector) bool {
	switch p.kind {
	case pseudoFirstChild:
		return n.ParentNode != nil && n.PreviousElementSibling() == nil
	case pseudoLastChild:
		return n.ParentNode != nil && n.NextElementSibling() == nil
	case pseudoNthChild:
		pos := elementPosition(n)
		if pos == 0 {
			return false
		}
		switch {
		case p.nth.odd:
			return pos%2 == 1
		case p.nth.even:
			return pos%2 == 0
		default:
			return pos == p.nth.index
		}
	case pseudoNot:
		return !matchCompound(n, p.inner)
	case pseudoDisabled:
		return formAssociated[n.TagName] && n.HasAttribute("disabled")
	case pseudoEnabled:
		return formAssociated[n.TagName] && !n.HasAttribute("disabled")
	case pseudoChecked:
		return n.HasAttribute("checked")
	case pseudoEmpty:
		return len(n.ChildNodes) == 0
	}
	return false
}

// elementPosition is the 1-indexed position among the parent's element
// children, 0 for a detached node.
func elementPosition(n *Node) int {
	if n.ParentNode == nil {
		return 0
	}
	pos := 0
	for _, c := range n.ParentNode.ChildNodes {
		if c.NodeType == ElementNode {
			pos++
			if c == n {
				return pos
			}
		}
	}
	return 0
}
