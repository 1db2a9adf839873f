package main

import (
	"log/slog"

	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/treefile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// builtins holds the state behind the components and actions tree
// documents rendered by the CLI can name. Handlers and renders are
// serialized by the preview session, so no locking is needed.
type builtins struct {
	count  int
	echo   string
	logger *slog.Logger
}

func newBuiltins(logger *slog.Logger) *builtins {
	if logger == nil {
		logger = slog.Default()
	}
	return &builtins{logger: logger}
}

func (b *builtins) resolver() treefile.Resolver {
	return treefile.Resolver{
		Components: map[string]vdom.ComponentFunc{
			"Count": b.countView,
			"Echo":  b.echoView,
			"List":  b.listView,
		},
		Actions: map[string]events.Handler{
			"increment": func(*host.Event) { b.count++ },
			"decrement": func(*host.Event) {
				if b.count > 0 {
					b.count--
				}
			},
			"reset": func(*host.Event) { b.count = 0 },
			"echo":  func(e *host.Event) { b.echo = e.Value("value") },
			"log":   b.log,
		},
	}
}

// countView renders the counter, optionally with a label prop.
func (b *builtins) countView(p vdom.Props) any {
	label, _ := p["label"].(string)
	return vdom.Span(
		vdom.Class("count"),
		vdom.If(label != "", label+": "),
		vdom.Textf("%d", b.count),
	)
}

func (b *builtins) echoView(vdom.Props) any {
	return vdom.Span(vdom.Class("echo"), b.echo)
}

// listView renders one item per count, so the counter actions grow and
// shrink the list.
func (b *builtins) listView(p vdom.Props) any {
	item, _ := p["item"].(string)
	if item == "" {
		item = "Item"
	}
	return vdom.Ul(
		vdom.Class("list"),
		vdom.Repeat(b.count, func(i int) any {
			return vdom.Li(vdom.Textf("%s %d", item, i+1))
		}),
	)
}

func (b *builtins) log(e *host.Event) {
	tag := ""
	if e.Target != nil {
		tag = e.Target.Tag()
	}
	b.logger.Info("event", "type", e.Type, "target", tag, "data", e.Data)
}
