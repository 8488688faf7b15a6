package dom

// MutationKind discriminates tree change notifications.
type MutationKind uint8

const (
	ChildInserted MutationKind = iota + 1
	ChildRemoved
	AttributeChanged
	CharacterDataChanged
)

func (k MutationKind) String() string {
	switch k {
	case ChildInserted:
		return "child-inserted"
	case ChildRemoved:
		return "child-removed"
	case AttributeChanged:
		return "attribute-changed"
	case CharacterDataChanged:
		return "character-data-changed"
	}
	return "unknown"
}

// MutationRecord carries enough data for an observer layer to reconstruct a
// change: the affected node, the change kind, and old/new values where the
// kind has them.
type MutationRecord struct {
	Kind          MutationKind
	Node          *Node
	Parent        *Node
	AttributeName string
	OldValue      string
	NewValue      string
}

// MutationFunc receives a record synchronously after the mutation is
// committed to the tree.
type MutationFunc func(MutationRecord)

// OnMutation installs the document's mutation hook. A nil fn removes it.
func (d *Document) OnMutation(fn MutationFunc) {
	d.onMutation = fn
}

func (d *Document) notify(rec MutationRecord) {
	if d.onMutation != nil {
		d.onMutation(rec)
	}
}
