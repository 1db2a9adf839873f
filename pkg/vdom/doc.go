// Package vdom provides the virtual tree model for vtree.
//
// There are two shapes of tree. Callers build raw descriptions: strings,
// numbers, slices, nil, *Desc values created with H or the element builders,
// and component functions. The Normalizer reduces a raw description to the
// canonical VNode form the reconciler works on.
//
// # Core Types
//
// VNode is a single sum type over Text, Fragment, Element, Component and
// Empty. After normalization no Component remains, fragments are flat and
// child lists hold no nil or bool entries.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P("Content"),
//	    OnClick(handler),
//	)
//
// Components are plain functions from props to a raw description:
//
//	func Greeting(p Props) any {
//	    return P("Hello, ", p["name"], "!")
//	}
//
//	H(Greeting, Props{"name": "Ada"})
//
// # Normalization
//
// Normalize invokes every component with its props plus a "children" entry,
// converts primitives to text and flattens slices. Values it cannot classify
// are reported and replaced with Empty.
package vdom
