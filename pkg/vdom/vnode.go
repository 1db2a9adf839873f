package vdom

import (
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindEmpty     VKind = iota // Placeholder, renders as an empty text leaf
	KindText                   // Plain text node
	KindElement                // <div>, <button>, etc.
	KindFragment               // Grouping without wrapper
	KindComponent              // Unresolved component invocation
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ChildrenKey is the reserved props key components receive their children in.
const ChildrenKey = "children"

// VNode is the canonical virtual node.
type VNode struct {
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g., "div")
	Props    Props         // Attributes and event handlers
	Children []*VNode      // Child nodes, or fragment members
	Text     string        // For KindText
	Comp     ComponentFunc // For KindComponent
}

// Props holds attributes and event handlers.
type Props map[string]any

// Clone returns a shallow copy of p. A nil map stays nil.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ComponentFunc renders props to a raw description. Props always contain
// ChildrenKey holding the normalized children as []*VNode.
type ComponentFunc func(props Props) any

// Empty returns the placeholder node.
func Empty() *VNode {
	return &VNode{Kind: KindEmpty}
}

// Members returns the node as a child list: a fragment's members, nothing
// for nil, or the node itself.
func (v *VNode) Members() []*VNode {
	if v == nil {
		return nil
	}
	if v.Kind == KindFragment {
		return v.Children
	}
	return []*VNode{v}
}

// String returns a compact debug rendering of the tree.
func (v *VNode) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *VNode) write(b *strings.Builder) {
	if v == nil {
		b.WriteString("<nil>")
		return
	}
	switch v.Kind {
	case KindEmpty:
		b.WriteString(`""`)
	case KindText:
		b.WriteString(`"` + v.Text + `"`)
	case KindComponent:
		b.WriteString("<component>")
	case KindFragment:
		b.WriteString("[")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(" ")
			}
			c.write(b)
		}
		b.WriteString("]")
	case KindElement:
		b.WriteString("<" + v.Tag)
		for _, k := range sortedKeys(v.Props) {
			if k == ChildrenKey {
				continue
			}
			b.WriteString(" " + k + "=" + PropToString(v.Props[k]))
		}
		b.WriteString(">")
		for _, c := range v.Children {
			c.write(b)
		}
		b.WriteString("</" + v.Tag + ">")
	default:
		b.WriteString("<?>")
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
