// Package host defines the primitive operations vtree needs from a live,
// mutable presentation tree.
//
// The reconciler never talks to a concrete tree directly. It creates nodes
// through a Document and mutates them through Node. Any platform that can
// create elements and text leaves, attach and detach children, walk to a
// parent, and set properties or attributes can host a vtree.
//
// # Identity
//
// Every node carries a NodeID assigned by its Document at creation time.
// IDs are never reused within a Document, which lets other packages key
// tables by node without holding the node itself.
//
// # Back-references
//
// Backref and SetBackref give the reconciler one opaque slot per node. vtree
// stores the canonical virtual node a host node currently represents there.
//
// # Mutations
//
// Documents may journal every mutating primitive as a Mutation. The journal
// is how tests assert "no-op diff" and how the preview server streams
// changes to a browser.
package host
