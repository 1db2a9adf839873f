package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/htmlhost"
	"github.com/vango-dev/vtree/pkg/render"
)

// ContainerID is the id of the element fixtures render into.
const ContainerID = "vtest-root"

// Fixture is a tree mounted into an in-memory document.
type Fixture struct {
	t         testing.TB
	Doc       *htmlhost.Document
	Container *htmlhost.Node
	Renderer  *render.Renderer
}

// NewFixture creates an empty fixture. Options are passed to render.New.
func NewFixture(t testing.TB, opts ...render.Option) *Fixture {
	t.Helper()
	doc := htmlhost.New()
	body := doc.Body()
	if body == nil {
		t.Fatal("vtest: blank document has no body")
	}
	container, ok := doc.CreateElement("div").(*htmlhost.Node)
	if !ok {
		t.Fatal("vtest: unexpected node type")
	}
	container.SetAttribute("id", ContainerID)
	body.AppendChild(container)
	doc.Drain()

	return &Fixture{
		t:         t,
		Doc:       doc,
		Container: container,
		Renderer:  render.New(events.NewRegistry(), opts...),
	}
}

// Mount creates a fixture and renders tree into it.
func Mount(t testing.TB, tree any, opts ...render.Option) *Fixture {
	t.Helper()
	f := NewFixture(t, opts...)
	f.Render(tree)
	return f
}

// Render renders tree into the container, failing the test on error.
func (f *Fixture) Render(tree any) {
	f.t.Helper()
	if err := f.Renderer.Render(context.Background(), tree, f.Container); err != nil {
		f.t.Fatalf("vtest: Render() error: %v", err)
	}
}

// HTML returns the container's inner HTML.
func (f *Fixture) HTML() string {
	return f.Container.InnerHTML()
}

// Drain returns and clears the mutations journaled since the last call.
func (f *Fixture) Drain() []host.Mutation {
	return f.Doc.Drain()
}

// Element returns the element with the given id, failing the test if
// there is none.
func (f *Fixture) Element(id string) host.Node {
	f.t.Helper()
	n := f.Doc.ElementByID(id)
	if n == nil {
		f.t.Fatalf("vtest: no element with id %q in:\n%s", id, truncate(f.HTML(), 500))
	}
	return n
}

// Dispatch fires an event of the given type at the element with id and
// reports whether a handler ran.
func (f *Fixture) Dispatch(id, eventType string, data map[string]string) bool {
	f.t.Helper()
	e := host.NewEvent(eventType, f.Element(id))
	e.Data = data
	f.Doc.DispatchEvent(e)
	return e.PropagationStopped()
}

// Click fires a click at the element with id and fails the test if no
// handler ran.
func (f *Fixture) Click(id string) {
	f.t.Helper()
	if !f.Dispatch(id, "click", nil) {
		f.t.Errorf("vtest: click on #%s was not handled", id)
	}
}

// ExpectHTML asserts that the container holds exactly want.
func (f *Fixture) ExpectHTML(want string) {
	f.t.Helper()
	if got := f.HTML(); got != want {
		f.t.Errorf("container HTML = %q, want %q", got, want)
	}
}

// ExpectNoCreates asserts that the journaled mutations since the last
// Drain create no nodes, and clears the journal.
func (f *Fixture) ExpectNoCreates() {
	f.t.Helper()
	for _, m := range f.Drain() {
		if m.Op.IsCreate() {
			f.t.Errorf("unexpected %s mutation: %+v", m.Op, m)
		}
	}
}

// RenderToString renders tree into a fresh document and returns the
// container's HTML, or "" if rendering fails.
func RenderToString(tree any) string {
	doc := htmlhost.New()
	body := doc.Body()
	container := doc.CreateElement("div")
	body.AppendChild(container)
	if err := render.New(events.NewRegistry()).Render(context.Background(), tree, container); err != nil {
		return ""
	}
	return container.(*htmlhost.Node).InnerHTML()
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, tree any, expected string) {
	t.Helper()
	html := RenderToString(tree)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, tree any, unexpected string) {
	t.Helper()
	html := RenderToString(tree)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, tree any, tag string) {
	t.Helper()
	html := RenderToString(tree)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, tree any, attr, value string) {
	t.Helper()
	html := RenderToString(tree)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
