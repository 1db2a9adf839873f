package htmlhost

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/pkg/host"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an html-backed host document.
type Document struct {
	root    *html.Node
	nodes   map[*html.Node]*Node
	byID    map[host.NodeID]*Node
	nextID  host.NodeID
	journal []host.Mutation
	record  bool
}

var (
	_ host.Document = (*Document)(nil)
	_ host.Journal  = (*Document)(nil)
	_ host.Releaser = (*Document)(nil)
)

// New creates a document holding an empty page.
func New() *Document {
	doc, err := Parse(strings.NewReader(blankPage))
	if err != nil {
		// blankPage is a constant the html parser always accepts.
		panic(err)
	}
	return doc
}

// Parse creates a document from an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root:   root,
		nodes:  make(map[*html.Node]*Node),
		byID:   make(map[host.NodeID]*Node),
		record: true,
	}, nil
}

// SetJournaling turns mutation recording on or off.
func (d *Document) SetJournaling(on bool) {
	d.record = on
	if !on {
		d.journal = nil
	}
}

// Mutations returns the mutations recorded since the last Drain.
func (d *Document) Mutations() []host.Mutation {
	return d.journal
}

// Drain returns and clears the recorded mutations.
func (d *Document) Drain() []host.Mutation {
	out := d.journal
	d.journal = nil
	return out
}

func (d *Document) log(m host.Mutation) {
	if d.record {
		d.journal = append(d.journal, m)
	}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) host.Node {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	w := d.wrap(n)
	d.log(host.Mutation{Op: host.MutCreateElement, Target: w.id, Key: tag})
	return w
}

// CreateText creates a detached text leaf.
func (d *Document) CreateText(text string) host.Node {
	w := d.wrap(&html.Node{Type: html.TextNode, Data: text})
	d.log(host.Mutation{Op: host.MutCreateText, Target: w.id, Value: text})
	return w
}

// CreateFragment creates an empty fragment.
func (d *Document) CreateFragment() host.Node {
	w := d.wrap(&html.Node{Type: html.DocumentNode})
	w.fragment = true
	d.log(host.Mutation{Op: host.MutCreateFragment, Target: w.id})
	return w
}

// Release drops the handles of n and all its descendants. Later lookups of
// the same html nodes produce fresh handles with new IDs.
func (d *Document) Release(n host.Node) {
	w, ok := n.(*Node)
	if !ok || w.doc != d {
		return
	}
	var release func(*html.Node)
	release = func(hn *html.Node) {
		d.drop(hn)
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			release(c)
		}
	}
	release(w.n)
}

// Root returns the document node.
func (d *Document) Root() host.Node {
	return d.wrap(d.root)
}

// Body returns the <body> element, or nil if the page has none.
func (d *Document) Body() host.Node {
	if n := findElement(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Body }); n != nil {
		return d.wrap(n)
	}
	return nil
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) host.Node {
	n := findElement(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// Lookup returns the live handle with the given ID.
func (d *Document) Lookup(id host.NodeID) host.Node {
	if w, ok := d.byID[id]; ok {
		return w
	}
	return nil
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the whole page as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// DispatchEvent delivers e to the listeners of e.Target and its ancestors,
// innermost first, until one calls StopPropagation.
func (d *Document) DispatchEvent(e *host.Event) {
	for cur := e.Target; cur != nil; cur = cur.Parent() {
		w, ok := cur.(*Node)
		if !ok {
			return
		}
		listeners := w.listeners[e.Type]
		if len(listeners) == 0 {
			continue
		}
		e.CurrentTarget = w
		for _, l := range append([]host.Listener(nil), listeners...) {
			l(e)
		}
		if e.PropagationStopped() {
			return
		}
	}
}

func (d *Document) wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	if w, ok := d.nodes[n]; ok {
		return w
	}
	d.nextID++
	w := &Node{doc: d, n: n, id: d.nextID}
	d.nodes[n] = w
	d.byID[w.id] = w
	return w
}

// drop forgets the handle of n, if any.
func (d *Document) drop(n *html.Node) {
	if w, ok := d.nodes[n]; ok {
		delete(d.byID, w.id)
		delete(d.nodes, n)
	}
}

// invalidate discards the child index of n's handle after n's children
// changed.
func (d *Document) invalidate(n *html.Node) {
	if n == nil {
		return
	}
	if w, ok := d.nodes[n]; ok {
		w.kids = nil
	}
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}
