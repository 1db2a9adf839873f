package events

import "github.com/vango-dev/vtree/pkg/host"

// Handler handles a delegated host event.
type Handler func(e *host.Event)

// SupportedEvents are the event types a container listens for by default.
var SupportedEvents = []string{"click", "mouseover", "focus", "keydown", "submit", "change"}

// AsHandler converts a handler property value. It accepts Handler,
// func(*host.Event) and func(); nil functions are rejected.
func AsHandler(v any) (Handler, bool) {
	switch fn := v.(type) {
	case Handler:
		return fn, fn != nil
	case func(*host.Event):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*host.Event) { fn() }, true
	}
	return nil, false
}
