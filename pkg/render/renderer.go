package render

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

const tracerName = "vtree"

// root is stored as the container's back-reference between cycles.
type root struct {
	tree *vdom.VNode
}

// Renderer renders raw descriptions into host containers. Render calls are
// serialized; a handler dispatched between cycles may call Render again.
type Renderer struct {
	mu sync.Mutex

	events   *events.Registry
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	maxDepth int
	onDiag   func(error)

	diags []error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records every cycle in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer. The default is the global provider's
// "vtree" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMaxDepth bounds nested component invocations.
func WithMaxDepth(depth int) Option {
	return func(r *Renderer) {
		r.maxDepth = depth
	}
}

// WithDiagnosticHook receives every diagnostic as it is reported.
func WithDiagnosticHook(fn func(error)) Option {
	return func(r *Renderer) {
		r.onDiag = fn
	}
}

// New creates a Renderer registering handlers in reg. A nil reg gets a
// fresh registry.
func New(reg *events.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		events:   reg,
		logger:   slog.Default().With("component", "render"),
		tracer:   otel.Tracer(tracerName),
		maxDepth: vdom.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.events == nil {
		r.events = events.NewRegistry(
			events.WithLogger(r.logger),
			events.WithDispatchHook(r.metrics.DispatchHook()),
		)
	}
	return r
}

// Registry returns the renderer's event registry.
func (r *Renderer) Registry() *events.Registry { return r.events }

// Diagnostics returns the diagnostics reported by the last cycle.
func (r *Renderer) Diagnostics() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.diags...)
}

// Render makes the children of container match tree. The first render
// into a container replaces whatever it holds; later renders patch the
// previous result in place. Shape problems in tree are reported as
// diagnostics, not errors; the only error is a nil container.
func (r *Renderer) Render(ctx context.Context, tree any, container host.Node) error {
	if container == nil {
		return errors.New("V004").WithDetail("render container is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	_, span := r.tracer.Start(ctx, "vtree.render", trace.WithAttributes(
		attribute.Int64("vtree.container", int64(container.ID())),
	))
	defer span.End()

	r.diags = nil
	norm := &vdom.Normalizer{MaxDepth: r.maxDepth, OnDiagnostic: r.report}
	rec := reconcile.New(container.Document(), r.events,
		reconcile.WithNormalizer(norm),
		reconcile.WithDiagnostics(r.report),
		reconcile.WithLogger(r.logger),
	)

	journal, _ := container.Document().(host.Journal)
	before := 0
	if journal != nil {
		before = len(journal.Mutations())
	}

	next := norm.Normalize(tree)

	phase := "update"
	if prev, ok := container.Backref().(*root); ok && prev.tree != nil {
		rec.UpdateChildren(container, next.Members(), prev.tree.Members())
	} else {
		phase = "mount"
		r.clear(container)
		container.AppendChild(rec.Mount(next))
	}
	container.SetBackref(&root{tree: next})
	r.events.Install(container)

	var mutations []host.Mutation
	if journal != nil {
		if all := journal.Mutations(); len(all) >= before {
			mutations = all[before:]
		}
	}
	stats := rec.Stats()
	elapsed := time.Since(start)

	r.metrics.recordCycle(phase, elapsed, stats.Mounted, r.events.Len(), mutations)
	span.SetAttributes(
		attribute.String("vtree.phase", phase),
		attribute.Int("vtree.mounted", stats.Mounted),
		attribute.Int("vtree.mutations", len(mutations)),
		attribute.Int("vtree.diagnostics", len(r.diags)),
	)
	r.logger.Debug("render",
		"container", container.ID(),
		"phase", phase,
		"mounted", stats.Mounted,
		"replaced", stats.Replaced,
		"removed", stats.Removed,
		"mutations", len(mutations),
		"duration", elapsed,
	)
	return nil
}

// Unmount removes everything a previous Render put into container and
// forgets its handlers. The delegated listeners stay installed.
func (r *Renderer) Unmount(container host.Node) {
	if container == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clear(container)
	container.SetBackref(nil)
}

// clear removes every child of container.
func (r *Renderer) clear(container host.Node) {
	rel, _ := container.Document().(host.Releaser)
	for i := container.ChildCount() - 1; i >= 0; i-- {
		child := container.ChildAt(i)
		container.RemoveChild(child)
		r.events.ForgetTree(child)
		if rel != nil {
			rel.Release(child)
		}
	}
}

func (r *Renderer) report(err error) {
	r.diags = append(r.diags, err)

	code := "unknown"
	var verr *errors.Error
	if stderrors.As(err, &verr) {
		code = verr.Code
	}
	r.metrics.recordDiagnostic(code)
	r.logger.Warn("render diagnostic", "code", code, "error", err)

	if r.onDiag != nil {
		r.onDiag(err)
	}
}

var (
	defaultRenderer     *Renderer
	defaultRendererOnce sync.Once
)

// Default returns the renderer used by RenderElement.
func Default() *Renderer {
	defaultRendererOnce.Do(func() {
		defaultRenderer = New(nil)
	})
	return defaultRenderer
}

// RenderElement renders tree into container with the default renderer.
func RenderElement(tree any, container host.Node) error {
	return Default().Render(context.Background(), tree, container)
}
