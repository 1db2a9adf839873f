package events

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/vango-dev/vtree/pkg/host"
)

// nodeKey identifies a host node across documents. NodeIDs are only
// unique within their document.
type nodeKey struct {
	doc host.Document
	id  host.NodeID
}

func keyOf(n host.Node) nodeKey {
	return nodeKey{doc: n.Document(), id: n.ID()}
}

// Registry maps (node, event type) pairs to handlers. One registry may
// serve containers in any number of documents.
type Registry struct {
	mu        sync.Mutex
	table     map[nodeKey]map[string]Handler
	installed map[nodeKey]bool

	events     []string
	logger     *slog.Logger
	onDispatch func(eventType string, handled bool)
}

// Option configures a Registry.
type Option func(*Registry)

// WithEvents sets the event types Install listens for.
func WithEvents(types ...string) Option {
	return func(r *Registry) {
		r.events = make([]string, 0, len(types))
		for _, t := range types {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				r.events = append(r.events, t)
			}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDispatchHook sets a callback invoked after every delegated dispatch.
func WithDispatchHook(fn func(eventType string, handled bool)) Option {
	return func(r *Registry) {
		r.onDispatch = fn
	}
}

// NewRegistry creates an empty registry listening for SupportedEvents.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		table:     make(map[nodeKey]map[string]Handler),
		installed: make(map[nodeKey]bool),
		events:    append([]string(nil), SupportedEvents...),
		logger:    slog.Default().With("component", "events"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events returns the event types Install listens for.
func (r *Registry) Events() []string {
	return append([]string(nil), r.events...)
}

// Register associates handler with node and eventType, replacing any
// previous handler for the same pair.
func (r *Registry) Register(node host.Node, eventType string, handler Handler) {
	if node == nil || handler == nil {
		return
	}
	eventType = strings.ToLower(eventType)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(node)
	byType := r.table[key]
	if byType == nil {
		byType = make(map[string]Handler)
		r.table[key] = byType
	}
	byType[eventType] = handler
}

// Unregister removes the handler for node and eventType.
func (r *Registry) Unregister(node host.Node, eventType string) {
	if node == nil {
		return
	}
	eventType = strings.ToLower(eventType)

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(node)
	byType := r.table[key]
	if byType == nil {
		return
	}
	delete(byType, eventType)
	if len(byType) == 0 {
		delete(r.table, key)
	}
}

// Forget removes every handler registered for node.
func (r *Registry) Forget(node host.Node) {
	if node == nil {
		return
	}
	r.mu.Lock()
	delete(r.table, keyOf(node))
	r.mu.Unlock()
}

// ForgetTree removes every handler registered for node and its descendants.
func (r *Registry) ForgetTree(node host.Node) {
	if node == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.table) == 0 {
		return
	}
	host.Walk(node, func(n host.Node) {
		delete(r.table, keyOf(n))
	})
}

// Lookup returns the handler for node and eventType.
func (r *Registry) Lookup(node host.Node, eventType string) (Handler, bool) {
	if node == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.table[keyOf(node)][strings.ToLower(eventType)]
	return h, ok
}

// Len returns the number of registered (node, event type) pairs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, byType := range r.table {
		n += len(byType)
	}
	return n
}

// Install adds one delegated listener per event type to container. It
// returns false when container was already installed.
func (r *Registry) Install(container host.Node) bool {
	if container == nil {
		return false
	}
	key := keyOf(container)
	r.mu.Lock()
	if r.installed[key] {
		r.mu.Unlock()
		return false
	}
	r.installed[key] = true
	r.mu.Unlock()

	for _, t := range r.events {
		container.AddEventListener(t, r.listen)
	}
	r.logger.Debug("delegation installed", "container", container.ID(), "events", r.events)
	return true
}

// Installed reports whether container has delegated listeners.
func (r *Registry) Installed(container host.Node) bool {
	if container == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed[keyOf(container)]
}

func (r *Registry) listen(e *host.Event) {
	if r.Dispatch(e) {
		e.StopPropagation()
	}
}

// Dispatch walks from e.Target towards the root and runs the first handler
// registered for e.Type. When e.CurrentTarget is set the walk ends there.
// Dispatch reports whether a handler ran.
func (r *Registry) Dispatch(e *host.Event) bool {
	if e == nil || e.Target == nil {
		return false
	}
	eventType := strings.ToLower(e.Type)
	boundary := e.CurrentTarget

	for cur := e.Target; cur != nil; cur = cur.Parent() {
		r.mu.Lock()
		h, ok := r.table[keyOf(cur)][eventType]
		r.mu.Unlock()

		if ok {
			// The lock is released so h may render again.
			h(e)
			if r.onDispatch != nil {
				r.onDispatch(eventType, true)
			}
			return true
		}
		if boundary != nil && keyOf(cur) == keyOf(boundary) {
			break
		}
	}

	if r.onDispatch != nil {
		r.onDispatch(eventType, false)
	}
	return false
}
