package reconcile

import (
	"sort"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// keyProp is never applied; it only identifies siblings to callers.
const keyProp = "key"

// Attributes brings the properties, attributes and handlers of node from
// prev to next. Values already present on the host are left untouched.
func (r *Reconciler) Attributes(node host.Node, next, prev vdom.Props) {
	if node == nil || node.Type() != host.ElementNode {
		return
	}
	r.removeStale(node, next, prev)
	r.apply(node, next)
}

func (r *Reconciler) removeStale(node host.Node, next, prev vdom.Props) {
	for _, key := range sortedKeys(prev) {
		if key == vdom.ChildrenKey || key == keyProp {
			continue
		}
		if _, ok := next[key]; ok {
			continue
		}
		switch {
		case vdom.IsEventKey(key):
			r.events.Unregister(node, vdom.EventName(key))
		case isClassKey(key):
			if hasClass(next) {
				continue
			}
			if node.HasProperty("className") {
				r.setProperty(node, "className", "")
			}
			node.RemoveAttribute("class")
		case node.HasProperty(key):
			if _, isBool := node.Property(key).(bool); isBool {
				r.setProperty(node, key, false)
			} else {
				r.setProperty(node, key, "")
			}
		default:
			node.RemoveAttribute(key)
		}
	}
}

func (r *Reconciler) apply(node host.Node, next vdom.Props) {
	for _, key := range sortedKeys(next) {
		value := next[key]
		switch {
		case key == vdom.ChildrenKey || key == keyProp:
			continue
		case vdom.IsEventKey(key):
			r.applyHandler(node, key, value)
		case isClassKey(key):
			if node.HasProperty("className") {
				r.setProperty(node, "className", classValue(value))
			} else {
				r.setAttribute(node, "class", classValue(value))
			}
		case node.HasProperty(key):
			r.setProperty(node, key, value)
		default:
			r.setAttribute(node, key, value)
		}
	}
}

func (r *Reconciler) applyHandler(node host.Node, key string, value any) {
	name := vdom.EventName(key)
	if value == nil {
		r.events.Unregister(node, name)
		return
	}
	h, ok := events.AsHandler(value)
	if !ok {
		r.report(errors.New("V003").WithDetailf("%s on <%s> holds %T", key, node.Tag(), value))
		return
	}
	r.events.Register(node, name, h)
}

func (r *Reconciler) setProperty(node host.Node, key string, value any) {
	if sameValue(node.Property(key), value) {
		return
	}
	node.SetProperty(key, value)
}

func (r *Reconciler) setAttribute(node host.Node, key string, value any) {
	switch v := value.(type) {
	case nil:
		node.RemoveAttribute(key)
	case bool:
		if !v {
			node.RemoveAttribute(key)
			return
		}
		if cur, ok := node.Attribute(key); ok && cur == "" {
			return
		}
		node.SetAttribute(key, "")
	default:
		s := vdom.PropToString(v)
		if cur, ok := node.Attribute(key); ok && cur == s {
			return
		}
		node.SetAttribute(key, s)
	}
}

func isClassKey(key string) bool {
	return key == "class" || key == "className"
}

func hasClass(p vdom.Props) bool {
	_, a := p["class"]
	_, b := p["className"]
	return a || b
}

func classValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		return ""
	default:
		return vdom.PropToString(val)
	}
}

// sameValue reports whether a host property already holds value. Booleans
// only match booleans; other values compare by their string form.
func sameValue(cur, value any) bool {
	if vdom.PropsEqual(cur, value) {
		return true
	}
	_, curBool := cur.(bool)
	_, valBool := value.(bool)
	if curBool || valBool {
		return false
	}
	return vdom.PropToString(cur) == vdom.PropToString(value)
}

func sortedKeys(p vdom.Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
