package vdom

// Desc is a raw, caller-facing tree description.
//
// Type is a tag name or a component: a ComponentFunc, func(Props) any or
// func(Props) *VNode. Children may hold anything Normalize accepts.
type Desc struct {
	Type     any
	Props    Props
	Children []any
}

// H creates a raw description. Nil and bool children are kept here and
// dropped during normalization, so conditional children can be inlined:
//
//	H("ul", nil, If(showFirst, H("li", nil, "first")), items)
func H(typ any, props Props, children ...any) *Desc {
	return &Desc{Type: typ, Props: props, Children: children}
}

// Component returns the description's component function, or nil when
// the description is an element.
func (d *Desc) Component() ComponentFunc {
	if d == nil {
		return nil
	}
	return asComponent(d.Type)
}

// Tag returns the element tag, or "" for components.
func (d *Desc) Tag() string {
	if d == nil {
		return ""
	}
	tag, _ := d.Type.(string)
	return tag
}

func asComponent(t any) ComponentFunc {
	switch fn := t.(type) {
	case ComponentFunc:
		return fn
	case func(Props) any:
		return fn
	case func(Props) *VNode:
		return func(p Props) any { return fn(p) }
	case func(Props) *Desc:
		return func(p Props) any { return fn(p) }
	}
	return nil
}

// Comp wraps a component function as a canonical component node. Mount
// and Update resolve such nodes without giving them a host node.
func Comp(fn ComponentFunc, props Props) *VNode {
	return &VNode{Kind: KindComponent, Comp: fn, Props: props}
}
