package vtest_test

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtest"
)

func TestRenderToString(t *testing.T) {
	node := vdom.Div(
		vdom.Class("container"),
		vdom.H1("Hello World"),
		vdom.P("Welcome"),
	)

	want := `<div class="container"><h1>Hello World</h1><p>Welcome</p></div>`
	if got := vtest.RenderToString(node); got != want {
		t.Errorf("RenderToString() = %q, want %q", got, want)
	}
}

func TestRenderToStringInvalidTree(t *testing.T) {
	if got := vtest.RenderToString(make(chan int)); got != "" {
		t.Errorf("RenderToString(chan) = %q, want empty", got)
	}
}

func TestExpectations(t *testing.T) {
	node := vdom.Div(
		vdom.Button(vdom.Class("btn-primary"), vdom.Type("submit"), "Click me"),
	)

	vtest.ExpectContains(t, node, "Click me")
	vtest.ExpectNotContains(t, node, "Error")
	vtest.ExpectElement(t, node, "button")
	vtest.ExpectAttribute(t, node, "class", "btn-primary")
	vtest.ExpectAttribute(t, node, "type", "submit")
}

func TestMount(t *testing.T) {
	f := vtest.Mount(t, vdom.P("hello"))

	f.ExpectHTML("<p>hello</p>")
	if f.Doc.ElementByID(vtest.ContainerID) == nil {
		t.Error("container is not attached to the document")
	}
	if len(f.Drain()) == 0 {
		t.Error("first render journaled no mutations")
	}
}

func TestFixtureClick(t *testing.T) {
	count := 0
	view := func() any {
		return vdom.Div(
			vdom.Button(vdom.ID("inc"), vdom.OnClick(func() { count++ }), "+"),
			vdom.Span(vdom.ID("out"), vdom.Textf("%d", count)),
		)
	}

	f := vtest.Mount(t, view())
	button := f.Element("inc")
	f.Drain()

	f.Click("inc")
	f.Render(view())

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	f.ExpectHTML(`<div><button id="inc">+</button><span id="out">1</span></div>`)
	if f.Element("inc").ID() != button.ID() {
		t.Error("button was recreated")
	}
	f.ExpectNoCreates()
}

func TestFixtureDispatchData(t *testing.T) {
	var got string
	f := vtest.Mount(t, vdom.Input(
		vdom.ID("name"),
		vdom.OnChange(func(e *host.Event) { got = e.Value("value") }),
	))

	if !f.Dispatch("name", "change", map[string]string{"value": "Ada"}) {
		t.Fatal("change was not handled")
	}
	if got != "Ada" {
		t.Errorf("handler saw %q, want Ada", got)
	}
	if f.Dispatch("name", "click", nil) {
		t.Error("click without a handler was reported as handled")
	}
}
