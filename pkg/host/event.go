package host

// Event is a host event travelling from its Target towards the root.
type Event struct {
	// Type is the lower-case event name ("click", "keydown", ...).
	Type string

	// Target is the node the event originated from.
	Target Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget Node

	// Data carries event-specific values (key, value, ...).
	Data map[string]string

	stopped   bool
	prevented bool
}

// NewEvent creates an event of the given type originating at target.
func NewEvent(eventType string, target Node) *Event {
	return &Event{Type: eventType, Target: target}
}

// StopPropagation stops host-level bubbling after the current node.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Value returns e.Data[key] or "".
func (e *Event) Value(key string) string {
	if e.Data == nil {
		return ""
	}
	return e.Data[key]
}
