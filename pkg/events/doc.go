// Package events associates host nodes with event handlers and delivers
// host events through one delegated listener per container.
//
// Handlers are keyed by the host-assigned node ID and event type:
//
//	reg := events.NewRegistry()
//	reg.Install(container)
//	reg.Register(button, "click", func(e *host.Event) { count++ })
//
// A click anywhere inside the button reaches the container's listener,
// which walks from the event target up to the container and runs the
// first handler registered for that node and event type.
//
// Entries are never collected implicitly. The reconciler calls Unregister
// for removed handler properties and ForgetTree for every detached or
// replaced subtree.
package events
