package vdom

import (
	"log/slog"
	"reflect"
	"strconv"

	"github.com/vango-dev/vtree/internal/errors"
)

// DefaultMaxDepth bounds nested component invocations along one path.
const DefaultMaxDepth = 512

// Normalizer reduces raw descriptions to canonical VNodes.
// The zero value is ready to use.
type Normalizer struct {
	// MaxDepth bounds nested component invocations. Zero means DefaultMaxDepth.
	MaxDepth int

	// OnDiagnostic receives V001/V002 diagnostics. When nil they are logged
	// with slog.Default.
	OnDiagnostic func(err error)
}

var defaultNormalizer Normalizer

// Normalize reduces input with a zero-value Normalizer.
func Normalize(input any) *VNode {
	return defaultNormalizer.Normalize(input)
}

// Normalize reduces input to canonical form. It never returns nil and never
// touches a host tree.
func (n *Normalizer) Normalize(input any) *VNode {
	return n.normalize(input, 0)
}

func (n *Normalizer) maxDepth() int {
	if n.MaxDepth > 0 {
		return n.MaxDepth
	}
	return DefaultMaxDepth
}

func (n *Normalizer) report(err error) {
	if n.OnDiagnostic != nil {
		n.OnDiagnostic(err)
		return
	}
	slog.Default().Warn("vdom diagnostic", "error", err)
}

func (n *Normalizer) normalize(input any, depth int) *VNode {
	switch v := input.(type) {
	case nil, bool:
		return Empty()
	case string:
		return Text(v)
	case *VNode:
		if v == nil {
			return Empty()
		}
		return n.normalizeVNode(v, depth)
	case *Desc:
		if v == nil {
			return Empty()
		}
		return n.normalizeDesc(v, depth)
	case []any:
		return n.fragment(v, depth)
	case []*VNode:
		raw := make([]any, len(v))
		for i, c := range v {
			raw[i] = c
		}
		return n.fragment(raw, depth)
	case []*Desc:
		raw := make([]any, len(v))
		for i, c := range v {
			raw[i] = c
		}
		return n.fragment(raw, depth)
	case []string:
		out := &VNode{Kind: KindFragment, Children: make([]*VNode, len(v))}
		for i, s := range v {
			out.Children[i] = Text(s)
		}
		return out
	}

	if s, ok := numberText(input); ok {
		return Text(s)
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		raw := make([]any, rv.Len())
		for i := range raw {
			raw[i] = rv.Index(i).Interface()
		}
		return n.fragment(raw, depth)
	}

	n.report(errors.New("V001").WithDetailf("value of type %T", input))
	return Empty()
}

func (n *Normalizer) normalizeDesc(d *Desc, depth int) *VNode {
	if comp := d.Component(); comp != nil {
		return n.invoke(comp, d.Props, d.Children, depth)
	}
	tag := d.Tag()
	if tag == "" {
		n.report(errors.New("V001").WithDetailf("description type %T is neither a tag nor a component", d.Type))
		return Empty()
	}
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    d.Props.Clone(),
		Children: n.children(d.Children, depth),
	}
}

func (n *Normalizer) normalizeVNode(v *VNode, depth int) *VNode {
	switch v.Kind {
	case KindEmpty:
		return Empty()
	case KindText:
		return Text(v.Text)
	case KindElement:
		return &VNode{
			Kind:     KindElement,
			Tag:      v.Tag,
			Props:    v.Props.Clone(),
			Children: n.children(vnodesToAny(v.Children), depth),
		}
	case KindFragment:
		return n.fragment(vnodesToAny(v.Children), depth)
	case KindComponent:
		if v.Comp == nil {
			n.report(errors.New("V001").WithDetail("component node without a render function"))
			return Empty()
		}
		return n.invoke(v.Comp, v.Props, vnodesToAny(v.Children), depth)
	default:
		n.report(errors.New("V001").WithDetailf("node kind %d", v.Kind))
		return Empty()
	}
}

// invoke renders a component with its props plus normalized children and
// normalizes the result.
func (n *Normalizer) invoke(comp ComponentFunc, props Props, children []any, depth int) *VNode {
	if depth >= n.maxDepth() {
		n.report(errors.New("V002").WithDetailf("limit %d", n.maxDepth()))
		return Empty()
	}
	p := props.Clone()
	if p == nil {
		p = make(Props, 1)
	}
	p[ChildrenKey] = n.children(children, depth)
	return n.normalize(comp(p), depth+1)
}

func (n *Normalizer) fragment(raw []any, depth int) *VNode {
	return &VNode{Kind: KindFragment, Children: n.children(raw, depth)}
}

// children normalizes a child list, dropping falsy entries and splicing
// fragments in place.
func (n *Normalizer) children(raw []any, depth int) []*VNode {
	out := make([]*VNode, 0, len(raw))
	for _, c := range raw {
		if isFalsy(c) {
			continue
		}
		nv := n.normalize(c, depth)
		if nv.Kind == KindFragment {
			out = append(out, nv.Children...)
			continue
		}
		out = append(out, nv)
	}
	return out
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil, bool:
		return true
	case *VNode:
		return val == nil
	case *Desc:
		return val == nil
	}
	return false
}

func vnodesToAny(nodes []*VNode) []any {
	out := make([]any, len(nodes))
	for i, c := range nodes {
		out[i] = c
	}
	return out
}

func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}
