package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateElementRoutesArguments(t *testing.T) {
	click := func() {}
	child := Span("x")

	d := Div(
		ID("a"),
		nil,
		[]Attr{Role("list"), AriaLabel("items")},
		OnClick(click),
		Props{"data-k": "v"},
		"text",
		child,
		42,
	)

	if d.Type != "div" {
		t.Errorf("Type = %v, want div", d.Type)
	}
	wantProps := []string{"id", "role", "aria-label", "onclick", "data-k"}
	if len(d.Props) != len(wantProps) {
		t.Errorf("Props = %v, want keys %v", d.Props, wantProps)
	}
	for _, k := range wantProps {
		if _, ok := d.Props[k]; !ok {
			t.Errorf("missing prop %q", k)
		}
	}
	if _, ok := d.Props["onclick"].(func()); !ok {
		t.Errorf("onclick = %T, want the handler", d.Props["onclick"])
	}

	if diff := cmp.Diff([]any{"text", child, 42}, d.Children); diff != "" {
		t.Errorf("Children mismatch (-want +got):\n%s", diff)
	}
}

func TestElementWithoutProps(t *testing.T) {
	d := P("only")
	if d.Props != nil {
		t.Errorf("Props = %v, want nil", d.Props)
	}
	if c := CustomElement("my-widget"); c.Type != "my-widget" || len(c.Children) != 0 {
		t.Errorf("CustomElement = %+v", c)
	}
}

func TestClassMerge(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"single", []any{Class("a", "b")}, "a b"},
		{"accumulates", []any{Class("a"), Class("b")}, "a b"},
		{"class if on", []any{Class("btn"), ClassIf(true, "active")}, "btn active"},
		{"class if off", []any{Class("btn"), ClassIf(false, "active")}, "btn"},
		{"empty second", []any{Class("a"), Class()}, "a"},
		{"classes", []any{Classes("a", []string{"", "b"}, map[string]bool{"d": true, "c": true, "x": false})}, "a b c d"},
		{"props map", []any{Class("a"), Props{"class": "b"}}, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Button(tt.args...)
			if got := d.Props["class"]; got != tt.want {
				t.Errorf("class = %q, want %q", got, tt.want)
			}
		})
	}

	if d := Div(ClassIf(false, "x")); d.Props != nil {
		t.Errorf("ClassIf(false) set props %v", d.Props)
	}
}

func TestEventBuilders(t *testing.T) {
	tests := []struct {
		h    EventHandler
		want string
	}{
		{OnClick(nil), "onclick"},
		{OnMouseOver(nil), "onmouseover"},
		{OnKeyDown(nil), "onkeydown"},
		{OnFocus(nil), "onfocus"},
		{OnSubmit(nil), "onsubmit"},
		{OnChange(nil), "onchange"},
		{On("dblclick", nil), "ondblclick"},
	}
	for _, tt := range tests {
		if tt.h.Event != tt.want {
			t.Errorf("Event = %q, want %q", tt.h.Event, tt.want)
		}
		if !IsEventKey(tt.h.Event) || EventName(tt.h.Event) != tt.want[2:] {
			t.Errorf("%q does not round-trip as an event key", tt.h.Event)
		}
	}
}

func TestControlFlowHelpers(t *testing.T) {
	if If(false, "x") != nil || If(true, "x") != "x" {
		t.Error("If")
	}
	if IfElse(true, "a", "b") != "a" || IfElse(false, "a", "b") != "b" {
		t.Error("IfElse")
	}
	called := false
	if When(false, func() any { called = true; return "x" }) != nil || called {
		t.Error("When(false) evaluated its body")
	}
	if Nothing() != nil {
		t.Error("Nothing")
	}

	words := []string{"a", "", "c"}
	got := Normalize(Ul(Range(words, func(w string, i int) any {
		if w == "" {
			return nil
		}
		return Li(Textf("%d:%s", i, w))
	})))
	want := Normalize(Ul(Li("0:a"), Li("2:c")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}

	if Repeat(0, func(int) any { return "x" }) != nil {
		t.Error("Repeat(0) should be nil")
	}
	if n := len(Repeat(3, func(i int) any { return If(i != 1, i) })); n != 2 {
		t.Errorf("Repeat dropped nils: len = %d, want 2", n)
	}
	if f := Fragment("a", "b"); len(f) != 2 {
		t.Errorf("Fragment = %v", f)
	}
}
