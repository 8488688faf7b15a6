package dom

import "strings"

// Document is the root of one independent DOM instance. Every document owns
// its node tree, its id lookup cache and its custom element registry;
// nothing is shared between documents.
type Document struct {
	*Node

	title    string
	byID     map[string]*Node
	byIDOK   bool
	registry *Registry

	onMutation MutationFunc
}

// NewDocument builds a document with the standard HTML > HEAD + BODY
// skeleton already attached.
func NewDocument() *Document {
	d := &Document{
		Node: &Node{
			NodeType: DocumentNode,
			NodeName: "#document",
		},
		registry: newRegistry(),
	}
	d.Node.OwnerDocument = d
	html := d.CreateElement("html")
	d.Node.AppendChild(html)
	html.AppendChild(d.CreateElement("head"))
	html.AppendChild(d.CreateElement("body"))
	return d
}

func (d *Document) CreateElement(tag string) *Node {
	n := newElementNode(d, tag)
	d.registry.construct(n)
	return n
}

func (d *Document) CreateTextNode(text string) *Node {
	return newTextNode(d, text)
}

func (d *Document) CreateComment(text string) *Node {
	return newCommentNode(d, text)
}

func (d *Document) CreateDocumentFragment() *Node {
	return newFragmentNode(d)
}

// DocumentElement returns the HTML element.
func (d *Document) DocumentElement() *Node {
	for _, c := range d.Node.ChildNodes {
		if c.NodeType == ElementNode && c.TagName == "HTML" {
			return c
		}
	}
	return nil
}

func (d *Document) Head() *Node {
	return d.namedSkeletonChild("HEAD")
}

func (d *Document) Body() *Node {
	return d.namedSkeletonChild("BODY")
}

func (d *Document) namedSkeletonChild(tag string) *Node {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, c := range root.ChildNodes {
		if c.NodeType == ElementNode && c.TagName == tag {
			return c
		}
	}
	return nil
}

// Title projects the text of a TITLE element under head when one exists,
// falling back to a string held on the document itself.
func (d *Document) Title() string {
	if t := d.titleElement(); t != nil {
		return t.TextContent()
	}
	return d.title
}

func (d *Document) SetTitle(s string) {
	head := d.Head()
	if head == nil {
		d.title = s
		return
	}
	t := d.titleElement()
	if t == nil {
		t = d.CreateElement("title")
		head.AppendChild(t)
	}
	t.SetTextContent(s)
}

func (d *Document) titleElement() *Node {
	head := d.Head()
	if head == nil {
		return nil
	}
	for _, c := range head.ChildNodes {
		if c.NodeType == ElementNode && c.TagName == "TITLE" {
			return c
		}
	}
	return nil
}

// GetElementByID resolves an id against a lazily built cache. The cache is
// dropped on any id mutation or node attach/detach and rebuilt on the next
// lookup, so a stale entry can never be returned.
func (d *Document) GetElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	if !d.byIDOK {
		d.byID = map[string]*Node{}
		d.Node.walkDescendants(func(n *Node) bool {
			if n.NodeType == ElementNode {
				if v := n.GetAttribute("id"); v != "" {
					if _, dup := d.byID[v]; !dup {
						d.byID[v] = n
					}
				}
			}
			return true
		})
		d.byIDOK = true
	}
	return d.byID[id]
}

func (d *Document) GetElementsByTagName(tag string) []*Node {
	want := strings.ToUpper(tag)
	var out []*Node
	d.Node.walkDescendants(func(n *Node) bool {
		if n.NodeType == ElementNode && (want == "*" || n.TagName == want) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func (d *Document) GetElementsByClassName(class string) []*Node {
	var out []*Node
	d.Node.walkDescendants(func(n *Node) bool {
		if n.NodeType == ElementNode && n.ClassList().Contains(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// CustomElements returns the document's lifecycle registry.
func (d *Document) CustomElements() *Registry {
	return d.registry
}

func (d *Document) idCacheInvalidate(n *Node, oldID, newID string) {
	d.byIDOK = false
}

// committedInsert runs the post-attach obligations: mutation record, id
// cache invalidation, connected lifecycle callbacks for the subtree.
func (d *Document) committedInsert(parent, child *Node) {
	d.byIDOK = false
	d.notify(MutationRecord{Kind: ChildInserted, Node: child, Parent: parent})
	if child.Connected() {
		child.walk(func(n *Node) bool {
			d.registry.connected(n)
			return true
		})
	}
}

func (d *Document) committedRemove(parent, child *Node, wasConnected bool) {
	d.byIDOK = false
	d.notify(MutationRecord{Kind: ChildRemoved, Node: child, Parent: parent})
	if wasConnected {
		child.walk(func(n *Node) bool {
			d.registry.disconnected(n)
			return true
		})
	}
}
