package reconcile

import (
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Update patches node, last synced with prev, to match next. A nil next
// detaches node. A nil prev falls back to node's back-reference.
func (r *Reconciler) Update(node host.Node, next, prev *vdom.VNode) {
	if node == nil {
		r.precondition("update of a missing host node")
		return
	}
	if next == nil {
		r.detach(node)
		return
	}

	switch next.Kind {
	case vdom.KindEmpty, vdom.KindText:
		if node.Type() == host.TextNode {
			if node.Text() != next.Text {
				node.SetText(next.Text)
			}
			return
		}
		r.replace(node, next)

	case vdom.KindFragment:
		if node.Type() == host.TextNode {
			r.replace(node, next)
			return
		}
		var old []*vdom.VNode
		if prev != nil && prev.Kind == vdom.KindFragment {
			old = prev.Children
		} else {
			old = hostMembers(node)
		}
		r.UpdateChildren(node, next.Children, old)

	case vdom.KindComponent:
		r.Update(node, r.resolve(next), prev)

	case vdom.KindElement:
		if node.Type() != host.ElementNode || !strings.EqualFold(node.Tag(), next.Tag) {
			r.replace(node, next)
			return
		}
		r.patchElement(node, next, prev)

	default:
		r.report(errors.New("V001").WithDetailf("node kind %d", next.Kind))
	}
}

func (r *Reconciler) patchElement(node host.Node, next, prev *vdom.VNode) {
	if prev == nil {
		prev, _ = node.Backref().(*vdom.VNode)
	}

	var prevProps vdom.Props
	var prevChildren []*vdom.VNode
	if prev != nil && prev.Kind == vdom.KindElement {
		prevProps = prev.Props
		prevChildren = prev.Children
	} else {
		prevChildren = hostMembers(node)
	}

	for key := range prevProps {
		if vdom.IsEventKey(key) {
			r.events.Unregister(node, vdom.EventName(key))
		}
	}
	next = r.flatElement(next)
	r.Attributes(node, next.Props, prevProps)
	r.UpdateChildren(node, next.Children, prevChildren)
	node.SetBackref(next)
	r.stats.Patched++
}

// UpdateChildren reconciles the children of parent by position: trailing
// children beyond len(next) are removed from the end, the rest are updated
// in place, and missing ones are mounted and appended. Component and
// fragment entries are first expanded into the host children they mount
// as. An unexpanded prev list is replaced by the host's current members,
// since re-running its components would not show what they rendered.
func (r *Reconciler) UpdateChildren(parent host.Node, next, prev []*vdom.VNode) {
	next = r.members(next)
	if !isFlat(prev) {
		prev = hostMembers(parent)
	}
	oldLen, newLen := len(prev), len(next)
	maxLen := max(oldLen, newLen)

	for i := maxLen - 1; i >= newLen; i-- {
		child := parent.ChildAt(i)
		if child == nil {
			continue
		}
		parent.RemoveChild(child)
		r.discard(child)
		r.stats.Removed++
	}

	for i := 0; i < newLen; i++ {
		child := parent.ChildAt(i)
		if i >= oldLen || child == nil {
			parent.AppendChild(r.Mount(next[i]))
			continue
		}
		r.Update(child, next[i], prev[i])
	}
}

// members expands list into one entry per host child: components are
// rendered and fragments spliced in.
func (r *Reconciler) members(list []*vdom.VNode) []*vdom.VNode {
	if isFlat(list) {
		return list
	}
	out := make([]*vdom.VNode, 0, len(list))
	for _, c := range list {
		switch {
		case c == nil:
			out = append(out, c)
		case c.Kind == vdom.KindComponent:
			out = append(out, r.members(r.resolve(c).Members())...)
		case c.Kind == vdom.KindFragment:
			out = append(out, r.members(c.Children)...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// flatElement returns v, or a copy whose children are expanded by members.
func (r *Reconciler) flatElement(v *vdom.VNode) *vdom.VNode {
	if isFlat(v.Children) {
		return v
	}
	cp := *v
	cp.Children = r.members(v.Children)
	return &cp
}

func isFlat(list []*vdom.VNode) bool {
	for _, c := range list {
		if c != nil && (c.Kind == vdom.KindComponent || c.Kind == vdom.KindFragment) {
			return false
		}
	}
	return true
}

// replace swaps node for a fresh mount of next.
func (r *Reconciler) replace(node host.Node, next *vdom.VNode) {
	parent := node.Parent()
	if parent == nil {
		r.precondition("replace of detached <%s> node %d", node.Type(), node.ID())
		return
	}
	fresh := r.Mount(next)
	parent.ReplaceChild(fresh, node)
	r.discard(node)
	r.stats.Replaced++
}

func (r *Reconciler) detach(node host.Node) {
	if parent := node.Parent(); parent != nil {
		parent.RemoveChild(node)
	}
	r.discard(node)
	r.stats.Removed++
}

// hostMembers recovers the canonical children of node from the host:
// element back-references and text leaf contents.
func hostMembers(node host.Node) []*vdom.VNode {
	n := node.ChildCount()
	out := make([]*vdom.VNode, n)
	for i := 0; i < n; i++ {
		child := node.ChildAt(i)
		switch child.Type() {
		case host.TextNode:
			out[i] = vdom.Text(child.Text())
		default:
			out[i], _ = child.Backref().(*vdom.VNode)
		}
	}
	return out
}
