// Package render is the entry point that turns raw tree descriptions into
// live host trees.
//
// A Renderer normalizes the description, mounts it on the first render into
// a container and patches it in place on every later render. The container
// remembers the previous canonical tree, so callers only pass the new one:
//
//	doc := htmlhost.New()
//	app := doc.ElementByID("app")
//
//	r := render.New(events.NewRegistry())
//	r.Render(ctx, vdom.Div(vdom.Class("counter"), vdom.Textf("%d", n)), app)
//
// The first render also installs one delegated listener per supported event
// type on the container. Handlers found in element properties are stored in
// the renderer's events.Registry, never on host nodes.
//
// # Diagnostics
//
// Malformed input does not fail a render. Unrecognized shapes (V001),
// runaway component recursion (V002), non-handler event properties (V003)
// and host precondition failures (V004) are logged, counted in
// vtree_diagnostics_total and available from Diagnostics until the next
// cycle.
//
// # Observability
//
// Each cycle runs inside an OpenTelemetry span named "vtree.render".
// Prometheus collectors are opt-in through WithMetrics and NewMetrics.
//
// RenderElement renders with a process-wide default Renderer.
package render
