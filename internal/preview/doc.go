// Package preview serves a tree document as a live page.
//
// A Session renders the document into an in-memory htmlhost page. The
// Server exposes that page over HTTP and keeps browsers in sync over a
// WebSocket:
//
//	GET /           the rendered page with the preview client injected
//	GET /_vtree/ws  render messages out, browser events in
//	GET /metrics    Prometheus render metrics (when enabled)
//
// Every render cycle is broadcast as a Message holding the container's
// HTML and the cycle's mutation journal. Browsers send events as
// {type, target, data}, where target is the element-index path from the
// container; the session dispatches them through the event registry and
// re-renders when a handler ran. File changes, reloads and events are
// serialized by the session mutex.
package preview
