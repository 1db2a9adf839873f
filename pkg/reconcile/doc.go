// Package reconcile builds and patches host trees from canonical virtual
// nodes.
//
// Mount creates a fresh host subtree. Update patches an existing host node
// in place so that it matches a new canonical node, given the canonical
// node it was last synced with. Children are matched by position; there is
// no keyed reconciliation.
//
// Each mounted element stores its canonical node as the host back-reference,
// so a later Update can find the previous tree without the caller keeping
// it. Handler properties are never written to the host; they go to the
// events.Registry under the element's node ID and are forgotten whenever a
// subtree is detached or replaced.
//
// Host preconditions that do not hold (a node without a parent where one is
// required) are reported as V004 diagnostics and the step is skipped.
package reconcile
