package vdom

func event(name string, handler any) EventHandler {
	return EventHandler{Event: EventPrefix + name, Handler: handler}
}

// On attaches handler to the named event. The registry matches event
// types case-insensitively.
func On(name string, handler any) EventHandler { return event(name, handler) }

func OnClick(handler any) EventHandler     { return event("click", handler) }
func OnMouseOver(handler any) EventHandler { return event("mouseover", handler) }
func OnKeyDown(handler any) EventHandler   { return event("keydown", handler) }
func OnFocus(handler any) EventHandler     { return event("focus", handler) }
func OnSubmit(handler any) EventHandler    { return event("submit", handler) }

// OnChange fires when an input's value is committed.
func OnChange(handler any) EventHandler { return event("change", handler) }
