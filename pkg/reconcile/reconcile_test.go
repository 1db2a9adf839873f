package reconcile

import (
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/htmlhost"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type fixture struct {
	doc   *htmlhost.Document
	app   host.Node
	reg   *events.Registry
	r     *Reconciler
	diags []error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{doc: htmlhost.New(), reg: events.NewRegistry()}
	f.app = f.doc.CreateElement("div")
	f.doc.Body().AppendChild(f.app)
	f.r = New(f.doc, f.reg, WithDiagnostics(func(err error) { f.diags = append(f.diags, err) }))
	f.doc.Drain()
	return f
}

// mount normalizes tree, mounts it into the app container and clears the
// journal.
func (f *fixture) mount(t *testing.T, tree any) (host.Node, *vdom.VNode) {
	t.Helper()
	v := vdom.Normalize(tree)
	n := f.r.Mount(v)
	f.app.AppendChild(n)
	f.doc.Drain()
	return n, v
}

func count(ms []host.Mutation, op host.MutationOp) int {
	n := 0
	for _, m := range ms {
		if m.Op == op {
			n++
		}
	}
	return n
}

func TestMountElement(t *testing.T) {
	f := newFixture(t)
	n, _ := f.mount(t, vdom.Div(vdom.ID("a"), vdom.Class("x", "y"), vdom.Data("k", "v"), vdom.Hidden(true), vdom.AttrOf("draggable", false), "hi"))

	tests := []struct {
		key     string
		want    string
		present bool
	}{
		{"id", "a", true},
		{"class", "x y", true},
		{"data-k", "v", true},
		{"hidden", "", true},
		{"draggable", "", false},
	}
	for _, tt := range tests {
		got, ok := n.Attribute(tt.key)
		if ok != tt.present || got != tt.want {
			t.Errorf("Attribute(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.present)
		}
	}
	if n.ChildCount() != 1 || n.ChildAt(0).Text() != "hi" {
		t.Errorf("children = %s, want text hi", n.(*htmlhost.Node).InnerHTML())
	}
	if _, ok := n.Backref().(*vdom.VNode); !ok {
		t.Error("mounted element has no back-reference")
	}
}

func TestMountNeverNil(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		v    *vdom.VNode
		typ  host.NodeType
	}{
		{"nil", nil, host.TextNode},
		{"empty", vdom.Empty(), host.TextNode},
		{"text", vdom.Text("x"), host.TextNode},
		{"fragment", vdom.Normalize([]any{"a", "b"}), host.FragmentNode},
		{"component", vdom.Comp(func(vdom.Props) any { return vdom.Span() }, nil), host.ElementNode},
		{"unknown kind", &vdom.VNode{Kind: vdom.VKind(99)}, host.TextNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := f.r.Mount(tt.v)
			if n == nil {
				t.Fatal("Mount returned nil")
			}
			if n.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", n.Type(), tt.typ)
			}
		})
	}
	if len(f.diags) != 1 || !errors.HasCode(f.diags[0], "V001") {
		t.Errorf("diagnostics = %v, want one V001", f.diags)
	}
}

func richTree(onClick func()) any {
	return vdom.Div(
		vdom.ID("root"), vdom.Class("card"), vdom.TitleAttr("hello"), vdom.Data("state", "open"), vdom.TabIndex(3),
		vdom.Ul(
			vdom.Li("one"),
			vdom.Li(vdom.Class("active"), "two"),
			vdom.Li(vdom.Strong("three"), " tail"),
		),
		vdom.Input(vdom.Type("text"), vdom.Value("abc"), vdom.Checked(true), vdom.Placeholder("name")),
		vdom.Button(vdom.OnClick(onClick), vdom.Disabled(false), "go"),
		vdom.If(false, vdom.P("hidden")),
	)
}

func TestIdenticalUpdateNoMutations(t *testing.T) {
	f := newFixture(t)
	onClick := func() {}
	n, prev := f.mount(t, richTree(onClick))

	f.r.Update(n, vdom.Normalize(richTree(onClick)), prev)

	if ms := f.doc.Mutations(); len(ms) != 0 {
		t.Errorf("identical update produced %d mutations: %v", len(ms), ms)
	}
	if len(f.diags) != 0 {
		t.Errorf("diagnostics = %v", f.diags)
	}
}

func TestIdenticalUpdateFromBackref(t *testing.T) {
	f := newFixture(t)
	n, _ := f.mount(t, richTree(func() {}))

	f.r.Update(n, vdom.Normalize(richTree(func() {})), nil)

	if ms := f.doc.Mutations(); len(ms) != 0 {
		t.Errorf("update without prev produced %d mutations: %v", len(ms), ms)
	}
	if f.reg.Len() != 1 {
		t.Errorf("registry Len() = %d, want 1", f.reg.Len())
	}
}

func TestChangeOnePropertyTouchesOnlyIt(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Div(vdom.TitleAttr("a"), vdom.Class("c"), vdom.Span("x")))

	f.r.Update(n, vdom.Normalize(vdom.Div(vdom.TitleAttr("b"), vdom.Class("c"), vdom.Span("x"))), prev)

	ms := f.doc.Mutations()
	if len(ms) != 1 {
		t.Fatalf("mutations = %v, want exactly one", ms)
	}
	if ms[0].Op != host.MutSetProperty || ms[0].Key != "title" || ms[0].Value != "b" {
		t.Errorf("mutation = %+v, want SetProperty title=b", ms[0])
	}
	if got, _ := n.Attribute("title"); got != "b" {
		t.Errorf("title attribute = %q, want b", got)
	}
}

func items(n int) *vdom.Desc {
	return vdom.Ul(vdom.Repeat(n, func(i int) any { return vdom.Li(vdom.Textf("item %d", i)) }))
}

func TestShrinkRemovesTrailingChildren(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, items(5))
	keep := []host.NodeID{n.ChildAt(0).ID(), n.ChildAt(1).ID()}

	f.r.Update(n, vdom.Normalize(items(2)), prev)

	ms := f.doc.Mutations()
	if len(ms) != 3 || count(ms, host.MutRemoveChild) != 3 {
		t.Errorf("mutations = %v, want 3 removals", ms)
	}
	if n.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", n.ChildCount())
	}
	for i, id := range keep {
		if n.ChildAt(i).ID() != id {
			t.Errorf("child %d was recreated", i)
		}
	}
}

func TestGrowAppendsChildren(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, items(2))

	f.r.Update(n, vdom.Normalize(items(4)), prev)

	ms := f.doc.Mutations()
	appends := 0
	for _, m := range ms {
		if m.Op == host.MutAppendChild && m.Target == n.ID() {
			appends++
		}
	}
	if appends != 2 {
		t.Errorf("appends to list = %d, want 2 (%v)", appends, ms)
	}
	if got := n.ChildAt(3).ChildAt(0).Text(); got != "item 3" {
		t.Errorf("last item text = %q, want item 3", got)
	}
}

func TestTagChangeReplacesSubtree(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Div(vdom.Button(vdom.OnClick(func() {}), vdom.I(vdom.OnMouseOver(func() {})), "x")))
	old := n.ChildAt(0)

	if f.reg.Len() != 2 {
		t.Fatalf("registry Len() = %d, want 2", f.reg.Len())
	}

	f.r.Update(n, vdom.Normalize(vdom.Div(vdom.Span("x"))), prev)

	if got := n.ChildAt(0); got.ID() == old.ID() || got.Tag() != "span" {
		t.Errorf("child = <%s> %d, want a new span", got.Tag(), got.ID())
	}
	if count(f.doc.Mutations(), host.MutReplaceChild) != 1 {
		t.Errorf("mutations = %v, want one ReplaceChild", f.doc.Mutations())
	}
	if f.reg.Len() != 0 {
		t.Errorf("registry Len() = %d after replacement, want 0", f.reg.Len())
	}
}

func TestTagCompareIgnoresCase(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.H("DIV", nil, "x"))

	f.r.Update(n, vdom.Normalize(vdom.H("div", nil, "x")), prev)

	if ms := f.doc.Mutations(); len(ms) != 0 {
		t.Errorf("mutations = %v, want none", ms)
	}
}

func TestTextUpdateKeepsIdentity(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Div(vdom.ID("a"), "hi"))
	leaf := n.ChildAt(0)

	f.r.Update(n, vdom.Normalize(vdom.Div(vdom.ID("a"), "bye")), prev)

	if f.app.ChildAt(0).ID() != n.ID() {
		t.Error("div was recreated")
	}
	if n.ChildAt(0).ID() != leaf.ID() || leaf.Text() != "bye" {
		t.Errorf("text leaf = %d %q, want %d \"bye\"", n.ChildAt(0).ID(), leaf.Text(), leaf.ID())
	}
	ms := f.doc.Mutations()
	if len(ms) != 1 || ms[0].Op != host.MutSetText {
		t.Errorf("mutations = %v, want one SetText", ms)
	}
}

func TestTextReplacedByElement(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Div("plain"))

	f.r.Update(n, vdom.Normalize(vdom.Div(vdom.Strong("bold"))), prev)

	if got := n.(*htmlhost.Node).InnerHTML(); got != "<strong>bold</strong>" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestNestedClickFiresOnce(t *testing.T) {
	f := newFixture(t)
	f.reg.Install(f.app)

	clicks := 0
	n, prev := f.mount(t, vdom.Button(vdom.OnClick(func() { clicks++ }), vdom.I(vdom.Class("icon"))))
	f.doc.DispatchEvent(host.NewEvent("click", n.ChildAt(0)))

	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}

	// A re-render with a new closure swaps the handler in place.
	second := 0
	f.r.Update(n, vdom.Normalize(vdom.Button(vdom.OnClick(func() { second++ }), vdom.I(vdom.Class("icon")))), prev)
	f.doc.DispatchEvent(host.NewEvent("click", n.ChildAt(0)))

	if clicks != 1 || second != 1 {
		t.Errorf("clicks = %d, second = %d; want 1, 1", clicks, second)
	}
}

func TestRemovedPropertiesAreReset(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Input(vdom.Disabled(true), vdom.Value("v"), vdom.TitleAttr("t"), vdom.Data("x", "1"), vdom.Class("c"), vdom.OnChange(func() {})))

	f.r.Update(n, vdom.Normalize(vdom.Input()), prev)

	if got := n.Property("disabled"); got != false {
		t.Errorf("disabled = %v, want false", got)
	}
	if got := n.Property("value"); got != "" {
		t.Errorf("value = %v, want empty", got)
	}
	for _, key := range []string{"disabled", "value", "title", "data-x", "class"} {
		if _, ok := n.Attribute(key); ok {
			t.Errorf("attribute %q still present", key)
		}
	}
	if f.reg.Len() != 0 {
		t.Errorf("registry Len() = %d, want 0", f.reg.Len())
	}
}

func TestBooleanAttribute(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Div(vdom.AriaHidden(true)))

	if got, ok := n.Attribute("aria-hidden"); !ok || got != "" {
		t.Errorf("aria-hidden = %q, %v; want present and empty", got, ok)
	}

	f.r.Update(n, vdom.Normalize(vdom.Div(vdom.AriaHidden(false))), prev)

	if _, ok := n.Attribute("aria-hidden"); ok {
		t.Error("aria-hidden still present after false")
	}
}

func TestEventPropNotHandler(t *testing.T) {
	f := newFixture(t)
	n, _ := f.mount(t, vdom.Button(vdom.OnClick("submitForm"), "go"))

	if len(f.diags) != 1 || !errors.HasCode(f.diags[0], "V003") {
		t.Errorf("diagnostics = %v, want one V003", f.diags)
	}
	if _, ok := n.Attribute("onclick"); ok {
		t.Error("handler property written as attribute")
	}
	if f.reg.Len() != 0 {
		t.Errorf("registry Len() = %d, want 0", f.reg.Len())
	}
}

func TestUpdateNilDetaches(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, vdom.Button(vdom.OnClick(func() {}), "x"))

	f.r.Update(n, nil, prev)

	if n.Parent() != nil {
		t.Error("node still attached")
	}
	if f.app.ChildCount() != 0 {
		t.Errorf("container has %d children, want 0", f.app.ChildCount())
	}
	if f.reg.Len() != 0 {
		t.Errorf("registry Len() = %d, want 0", f.reg.Len())
	}
}

func TestUpdateComponentNode(t *testing.T) {
	f := newFixture(t)
	label := func(p vdom.Props) any { return vdom.Span(p["text"]) }
	n, prev := f.mount(t, vdom.Comp(label, vdom.Props{"text": "a"}))

	f.r.Update(n, vdom.Comp(label, vdom.Props{"text": "b"}), prev)

	if got := n.ChildAt(0).Text(); got != "b" {
		t.Errorf("text = %q, want b", got)
	}
}

func TestComponentChildRenderingFragment(t *testing.T) {
	f := newFixture(t)
	first := "a"
	pair := func(vdom.Props) any { return []any{vdom.Li(first), vdom.Li("b")} }
	list := func() *vdom.VNode {
		return &vdom.VNode{Kind: vdom.KindElement, Tag: "ul", Children: []*vdom.VNode{
			vdom.Comp(pair, nil),
			vdom.Normalize(vdom.Li("z")),
		}}
	}

	prev := list()
	ul := f.r.Mount(prev)
	f.app.AppendChild(ul)
	f.doc.Drain()
	html := func() string { return ul.(*htmlhost.Node).InnerHTML() }
	if got := html(); got != "<li>a</li><li>b</li><li>z</li>" {
		t.Fatalf("mounted %q", got)
	}
	z := ul.ChildAt(2)

	tests := []struct {
		name  string
		first string
		prev  *vdom.VNode
		want  string
	}{
		{"explicit prev", "a2", prev, "<li>a2</li><li>b</li><li>z</li>"},
		{"back-reference", "a3", nil, "<li>a3</li><li>b</li><li>z</li>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first = tt.first
			f.r.Update(ul, list(), tt.prev)

			if got := html(); got != tt.want {
				t.Errorf("InnerHTML() = %q, want %q", got, tt.want)
			}
			if ul.ChildAt(2) != z {
				t.Error("trailing sibling was recreated")
			}
			ms := f.doc.Drain()
			if count(ms, host.MutCreateElement) != 0 || count(ms, host.MutSetText) != 1 {
				t.Errorf("mutations = %v, want a single SetText", ms)
			}
		})
	}
}

func TestEmptyComponentChildTakesNoSlot(t *testing.T) {
	f := newFixture(t)
	show := false
	items := func(vdom.Props) any {
		if !show {
			return []any{}
		}
		return []any{vdom.Li("x"), vdom.Li("y")}
	}
	list := func() *vdom.VNode {
		return &vdom.VNode{Kind: vdom.KindElement, Tag: "ul", Children: []*vdom.VNode{
			vdom.Comp(items, nil),
			vdom.Normalize(vdom.Li("end")),
		}}
	}

	ul := f.r.Mount(list())
	f.app.AppendChild(ul)
	if got := ul.(*htmlhost.Node).InnerHTML(); got != "<li>end</li>" {
		t.Fatalf("mounted %q", got)
	}

	show = true
	f.r.Update(ul, list(), nil)
	if got := ul.(*htmlhost.Node).InnerHTML(); got != "<li>x</li><li>y</li><li>end</li>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if ref, _ := ul.Backref().(*vdom.VNode); ref == nil || len(ref.Children) != 3 {
		t.Errorf("back-reference = %v, want three expanded children", ref)
	}
}

func TestUpdateFragmentInContainer(t *testing.T) {
	f := newFixture(t)

	first := vdom.Normalize([]any{vdom.Li("a"), vdom.Li("b"), vdom.Li("c")})
	f.r.Update(f.app, first, nil)
	if f.app.ChildCount() != 3 {
		t.Fatalf("ChildCount() = %d, want 3", f.app.ChildCount())
	}

	f.doc.Drain()
	f.r.Update(f.app, vdom.Normalize([]any{vdom.Li("a"), vdom.Li("z")}), first)

	if f.app.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", f.app.ChildCount())
	}
	if got := f.app.(*htmlhost.Node).InnerHTML(); got != "<li>a</li><li>z</li>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	ms := f.doc.Mutations()
	if count(ms, host.MutRemoveChild) != 1 || count(ms, host.MutSetText) != 1 || len(ms) != 2 {
		t.Errorf("mutations = %v, want one removal and one SetText", ms)
	}
}

func TestReplaceDetachedReportsPrecondition(t *testing.T) {
	f := newFixture(t)
	leaf := f.doc.CreateText("x")

	f.r.Update(leaf, vdom.Normalize(vdom.Div()), nil)

	if len(f.diags) != 1 || !errors.HasCode(f.diags[0], "V004") {
		t.Errorf("diagnostics = %v, want one V004", f.diags)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	n, prev := f.mount(t, items(3))
	f.r.ResetStats()

	f.r.Update(n, vdom.Normalize(items(1)), prev)

	st := f.r.Stats()
	if st.Removed != 2 || st.Mounted != 0 || st.Replaced != 0 {
		t.Errorf("Stats() = %+v, want 2 removed", st)
	}
	if st.Patched != 2 {
		t.Errorf("Patched = %d, want 2 (list and item)", st.Patched)
	}
}
