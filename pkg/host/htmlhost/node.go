package htmlhost

import (
	"bytes"

	"golang.org/x/net/html"

	"github.com/vango-dev/vtree/pkg/host"
)

// Node is a handle on an *html.Node owned by a Document.
type Node struct {
	doc       *Document
	n         *html.Node
	id        host.NodeID
	fragment  bool
	props     map[string]any
	listeners map[string][]host.Listener
	backref   any

	// kids indexes the children of n; nil means stale.
	kids []*html.Node
}

var _ host.Node = (*Node)(nil)

// HTML returns the wrapped html node. Changing its children directly
// bypasses the child index; use the host.Node methods instead.
func (w *Node) HTML() *html.Node { return w.n }

func (w *Node) ID() host.NodeID { return w.id }

func (w *Node) Type() host.NodeType {
	switch w.n.Type {
	case html.ElementNode:
		return host.ElementNode
	case html.DocumentNode:
		return host.FragmentNode
	default:
		// Comments and doctypes behave as leaves.
		return host.TextNode
	}
}

func (w *Node) Tag() string {
	if w.n.Type != html.ElementNode {
		return ""
	}
	return w.n.Data
}

func (w *Node) Document() host.Document { return w.doc }

func (w *Node) Text() string {
	if w.n.Type == html.ElementNode || w.n.Type == html.DocumentNode {
		return ""
	}
	return w.n.Data
}

func (w *Node) SetText(text string) {
	if w.n.Type == html.ElementNode || w.n.Type == html.DocumentNode {
		return
	}
	w.n.Data = text
	w.doc.log(host.Mutation{Op: host.MutSetText, Target: w.id, Value: text})
}

func (w *Node) Parent() host.Node {
	if w.n.Parent == nil {
		return nil
	}
	return w.doc.wrap(w.n.Parent)
}

func (w *Node) ChildCount() int {
	return len(w.children())
}

func (w *Node) ChildAt(i int) host.Node {
	kids := w.children()
	if i < 0 || i >= len(kids) {
		return nil
	}
	return w.doc.wrap(kids[i])
}

// children returns the indexed children of w, rebuilding the index when a
// mutation made it stale.
func (w *Node) children() []*html.Node {
	if w.kids == nil {
		w.kids = []*html.Node{}
		for c := w.n.FirstChild; c != nil; c = c.NextSibling {
			w.kids = append(w.kids, c)
		}
	}
	return w.kids
}

// AppendChild moves child to the end of w's children. Appending a fragment
// moves the fragment's children instead and consumes the fragment.
func (w *Node) AppendChild(child host.Node) {
	c, ok := w.own(child)
	if !ok || c == w {
		return
	}
	if c.fragment {
		for _, moved := range c.detachChildren() {
			w.n.AppendChild(moved)
			w.doc.log(host.Mutation{Op: host.MutAppendChild, Target: w.id, Child: w.doc.wrap(moved).id})
		}
		w.doc.drop(c.n)
		w.kids = nil
		return
	}
	w.doc.detach(c.n)
	w.n.AppendChild(c.n)
	w.kids = nil
	w.doc.log(host.Mutation{Op: host.MutAppendChild, Target: w.id, Child: c.id})
}

func (w *Node) RemoveChild(child host.Node) {
	c, ok := w.own(child)
	if !ok || c.n.Parent != w.n {
		return
	}
	w.n.RemoveChild(c.n)
	w.kids = nil
	w.doc.log(host.Mutation{Op: host.MutRemoveChild, Target: w.id, Child: c.id})
}

// ReplaceChild puts next where old is. A fragment's children take old's
// place in order.
func (w *Node) ReplaceChild(next, old host.Node) {
	o, ok := w.own(old)
	if !ok || o.n.Parent != w.n {
		return
	}
	nw, ok := w.own(next)
	if !ok || nw == o {
		return
	}
	if nw.fragment {
		for _, moved := range nw.detachChildren() {
			w.n.InsertBefore(moved, o.n)
			w.doc.log(host.Mutation{Op: host.MutInsertBefore, Target: w.id, Child: w.doc.wrap(moved).id, Old: o.id})
		}
		w.doc.drop(nw.n)
		w.n.RemoveChild(o.n)
		w.kids = nil
		w.doc.log(host.Mutation{Op: host.MutRemoveChild, Target: w.id, Child: o.id})
		return
	}
	w.doc.detach(nw.n)
	w.n.InsertBefore(nw.n, o.n)
	w.n.RemoveChild(o.n)
	w.kids = nil
	w.doc.log(host.Mutation{Op: host.MutReplaceChild, Target: w.id, Child: nw.id, Old: o.id})
}

func (w *Node) Attribute(key string) (string, bool) {
	return attr(w.n, key)
}

func (w *Node) SetAttribute(key, value string) {
	if w.n.Type != html.ElementNode {
		return
	}
	setAttr(w.n, key, value)
	w.forgetReflected(key)
	w.doc.log(host.Mutation{Op: host.MutSetAttr, Target: w.id, Key: key, Value: value})
}

func (w *Node) RemoveAttribute(key string) {
	if _, ok := attr(w.n, key); !ok {
		return
	}
	removeAttr(w.n, key)
	w.forgetReflected(key)
	w.doc.log(host.Mutation{Op: host.MutRemoveAttr, Target: w.id, Key: key})
}

func (w *Node) AddEventListener(eventType string, listener host.Listener) {
	if w.listeners == nil {
		w.listeners = make(map[string][]host.Listener)
	}
	w.listeners[eventType] = append(w.listeners[eventType], listener)
}

// ListenerCount returns the number of low-level listeners for eventType.
func (w *Node) ListenerCount(eventType string) int {
	return len(w.listeners[eventType])
}

func (w *Node) Backref() any     { return w.backref }
func (w *Node) SetBackref(v any) { w.backref = v }

// OuterHTML renders the node and its subtree.
func (w *Node) OuterHTML() string {
	if w.n.Type == html.DocumentNode {
		return w.InnerHTML()
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, w.n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the node's children.
func (w *Node) InnerHTML() string {
	var buf bytes.Buffer
	for c := w.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// own converts n to a handle of this document.
func (w *Node) own(n host.Node) (*Node, bool) {
	c, ok := n.(*Node)
	if !ok || c == nil || c.doc != w.doc {
		return nil, false
	}
	return c, true
}

func (w *Node) detachChildren() []*html.Node {
	var out []*html.Node
	for c := w.n.FirstChild; c != nil; {
		next := c.NextSibling
		w.n.RemoveChild(c)
		out = append(out, c)
		c = next
	}
	w.kids = nil
	return out
}

// detach unlinks n from its parent.
func (d *Document) detach(n *html.Node) {
	if p := n.Parent; p != nil {
		p.RemoveChild(n)
		d.invalidate(p)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}
