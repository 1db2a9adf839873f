package reconcile

import (
	"log/slog"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Stats counts the host work done by a Reconciler.
type Stats struct {
	Mounted  int // host nodes created
	Patched  int // elements updated in place
	Replaced int // subtrees replaced
	Removed  int // subtrees detached
}

// Reconciler mounts and updates host trees of one document.
type Reconciler struct {
	doc    host.Document
	events *events.Registry
	norm   *vdom.Normalizer
	logger *slog.Logger
	diag   func(error)
	stats  Stats
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithNormalizer sets the normalizer used to resolve component nodes.
func WithNormalizer(n *vdom.Normalizer) Option {
	return func(r *Reconciler) {
		if n != nil {
			r.norm = n
		}
	}
}

// WithDiagnostics sets the callback receiving V001, V003 and V004
// diagnostics. Without it diagnostics are logged.
func WithDiagnostics(fn func(error)) Option {
	return func(r *Reconciler) {
		r.diag = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Reconciler creating nodes in doc and registering handlers
// in reg.
func New(doc host.Document, reg *events.Registry, opts ...Option) *Reconciler {
	r := &Reconciler{
		doc:    doc,
		events: reg,
		logger: slog.Default().With("component", "reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.events == nil {
		r.events = events.NewRegistry(events.WithLogger(r.logger))
	}
	if r.norm == nil {
		r.norm = &vdom.Normalizer{OnDiagnostic: r.report}
	}
	return r
}

// Registry returns the registry handlers are registered in.
func (r *Reconciler) Registry() *events.Registry { return r.events }

// Stats returns the work counted since New or the last ResetStats.
func (r *Reconciler) Stats() Stats { return r.stats }

// ResetStats zeroes the counters.
func (r *Reconciler) ResetStats() { r.stats = Stats{} }

func (r *Reconciler) report(err error) {
	if r.diag != nil {
		r.diag(err)
		return
	}
	r.logger.Warn("reconcile diagnostic", "error", err)
}

func (r *Reconciler) precondition(format string, args ...any) {
	r.report(errors.New("V004").WithDetailf(format, args...))
}

// resolve renders a component node to its canonical result.
func (r *Reconciler) resolve(v *vdom.VNode) *vdom.VNode {
	return r.norm.Normalize(v)
}

// discard forgets the registrations of a subtree that has left the tree and
// releases its host state.
func (r *Reconciler) discard(n host.Node) {
	r.events.ForgetTree(n)
	if rel, ok := r.doc.(host.Releaser); ok {
		rel.Release(n)
	}
}
