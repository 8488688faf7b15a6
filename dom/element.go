package dom

// GetAttribute returns the attribute value under the case-normalized name,
// or the empty string when absent. HasAttribute distinguishes an absent
// attribute from an empty-valued one.
func (n *Node) GetAttribute(name string) string {
	if n.NodeType != ElementNode {
		return ""
	}
	v, _ := n.Attributes.Get(name)
	return v
}

func (n *Node) HasAttribute(name string) bool {
	return n.NodeType == ElementNode && n.Attributes.Has(name)
}

func (n *Node) SetAttribute(name, value string) {
	if n.NodeType != ElementNode {
		return
	}
	old, existed := n.Attributes.Set(name, value)
	if existed && old == value {
		return
	}
	n.attributeCommitted(name, old, value, existed)
}

func (n *Node) RemoveAttribute(name string) {
	if n.NodeType != ElementNode {
		return
	}
	old, existed := n.Attributes.Remove(name)
	if !existed {
		return
	}
	n.attributeCommitted(name, old, "", true)
}

func (n *Node) attributeCommitted(name, old, value string, existed bool) {
	doc := n.OwnerDocument
	if doc == nil {
		return
	}
	if normalizeAttrName(name) == "id" {
		doc.idCacheInvalidate(n, old, value)
	}
	oldVal := ""
	if existed {
		oldVal = old
	}
	doc.notify(MutationRecord{
		Kind:          AttributeChanged,
		Node:          n,
		AttributeName: normalizeAttrName(name),
		OldValue:      oldVal,
		NewValue:      value,
	})
	doc.registry.attributeChanged(n, normalizeAttrName(name), oldVal, value)
}

// Id is a convenience over the id attribute.
func (n *Node) Id() string {
	return n.GetAttribute("id")
}

func (n *Node) SetId(id string) {
	n.SetAttribute("id", id)
}

// ClassList returns the live token view over the class attribute. The view
// reads through to the attribute on every access so the two never diverge.
func (n *Node) ClassList() *ClassList {
	if n.NodeType != ElementNode {
		return nil
	}
	if n.Element.classList == nil {
		n.Element.classList = &ClassList{owner: n}
	}
	return n.Element.classList
}

// Style returns the live inline-style view over the style attribute.
func (n *Node) Style() *InlineStyle {
	if n.NodeType != ElementNode {
		return nil
	}
	if n.Element.style == nil {
		n.Element.style = &InlineStyle{owner: n}
	}
	return n.Element.style
}
