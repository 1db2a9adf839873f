package host

// NodeID is a document-unique node identifier.
type NodeID uint64

// NodeType is the host node discriminator.
type NodeType uint8

const (
	ElementNode  NodeType = iota // <div>, <button>, etc.
	TextNode                     // Text leaf
	FragmentNode                 // Grouping construct; moves its children on append
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Document creates host nodes.
type Document interface {
	// CreateElement creates a detached element for tag.
	CreateElement(tag string) Node

	// CreateText creates a detached text leaf.
	CreateText(text string) Node

	// CreateFragment creates an empty grouping node. Appending a fragment
	// moves its children into the new parent and leaves the fragment empty.
	CreateFragment() Node
}

// Node is a single node of the host tree.
type Node interface {
	ID() NodeID
	Type() NodeType

	// Tag returns the lower-case tag name for elements and "" otherwise.
	Tag() string

	// Document returns the document that created the node.
	Document() Document

	// Text returns the content of a text leaf.
	Text() string
	// SetText replaces the content of a text leaf.
	SetText(text string)

	// Parent returns the parent node or nil when detached.
	Parent() Node
	ChildCount() int
	// ChildAt returns the child at index i or nil when out of range.
	ChildAt(i int) Node
	AppendChild(child Node)
	// RemoveChild detaches child. It is a no-op when child is not a child
	// of this node.
	RemoveChild(child Node)
	// ReplaceChild puts next where old is. It is a no-op when old is not a
	// child of this node.
	ReplaceChild(next, old Node)

	// HasProperty reports whether key is a native settable property.
	HasProperty(key string) bool
	Property(key string) any
	SetProperty(key string, value any)

	Attribute(key string) (string, bool)
	SetAttribute(key, value string)
	RemoveAttribute(key string)

	// AddEventListener attaches a low-level listener invoked when an event
	// of the given type reaches this node while bubbling.
	AddEventListener(eventType string, listener Listener)

	Backref() any
	SetBackref(v any)
}

// Listener receives low-level host events.
type Listener func(e *Event)

// Contains reports whether n is root or one of its descendants.
func Contains(root, n Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.ID() == root.ID() {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every descendant in document order.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	fn(n)
	for i := 0; i < n.ChildCount(); i++ {
		Walk(n.ChildAt(i), fn)
	}
}

// Releaser is implemented by documents that keep per-node state outside the
// nodes themselves. The reconciler calls Release for every subtree it
// discards.
type Releaser interface {
	Release(n Node)
}
