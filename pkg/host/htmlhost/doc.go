// Package htmlhost implements the host tree on top of golang.org/x/net/html.
//
// A Document wraps parsed or freshly created *html.Node values in Node
// handles that carry vtree's per-node state: a stable NodeID, emulated
// native properties, low-level event listeners and the reconciler's
// back-reference slot. Every mutating primitive is journaled so callers can
// count or replay changes.
//
// Native properties are emulated from a per-tag table (properties.go).
// Properties that have an HTML attribute counterpart are reflected into it,
// so Render always shows the current state.
//
// Event delivery is host-level bubbling: DispatchEvent walks from the target
// to the root and runs the listeners registered with AddEventListener.
package htmlhost
