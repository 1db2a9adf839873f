package preview

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/htmlhost"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/treefile"
)

const pageShell = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>%s</title></head><body><div id="%s"></div></body></html>`

// SessionOptions configures a Session.
type SessionOptions struct {
	// Page is the path of the tree document.
	Page string

	// Container is the id of the element the tree renders into.
	Container string

	// Resolver resolves component and action names in the document.
	Resolver treefile.Resolver

	// Renderer renders the tree. Defaults to render.New(nil).
	Renderer *render.Renderer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// OnCycle receives the result of every render cycle.
	OnCycle func(Message)
}

// Session holds one rendered page. Reloads and browser events are
// serialized by the session mutex. Handlers run under that mutex, so a
// Reload or SetTree issued while a dispatch is in progress is deferred
// and rendered once the handlers return.
type Session struct {
	mu        sync.Mutex
	doc       *htmlhost.Document
	container *htmlhost.Node
	renderer  *render.Renderer
	page      string
	res       treefile.Resolver
	logger    *slog.Logger
	onCycle   func(Message)

	tree any
	last *Message

	// pmu guards dispatching and pending.
	pmu         sync.Mutex
	dispatching bool
	pending     *change
}

// change is a tree update deferred until the running dispatch ends.
type change struct {
	tree   any
	reload bool
}

// NewSession creates a session with an empty page.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Container == "" {
		return nil, errors.New("V010").WithDetail("container id is empty")
	}
	shell := fmt.Sprintf(pageShell, html.EscapeString(opts.Page), html.EscapeString(opts.Container))
	doc, err := htmlhost.Parse(strings.NewReader(shell))
	if err != nil {
		return nil, errors.New("V004").Wrap(err)
	}
	container, ok := doc.ElementByID(opts.Container).(*htmlhost.Node)
	if !ok {
		return nil, errors.New("V004").WithDetailf("no element with id %q", opts.Container)
	}
	doc.Drain()

	s := &Session{
		doc:       doc,
		container: container,
		renderer:  opts.Renderer,
		page:      opts.Page,
		res:       opts.Resolver,
		logger:    opts.Logger,
		onCycle:   opts.OnCycle,
	}
	if s.renderer == nil {
		s.renderer = render.New(nil)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Reload decodes the tree document and renders it. On a decode failure
// the previous tree stays on the page.
func (s *Session) Reload(ctx context.Context) error {
	if s.postpone(&change{reload: true}) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.decode(); err != nil {
		return err
	}
	return s.render(ctx)
}

// SetTree renders tree in place of the tree document.
func (s *Session) SetTree(ctx context.Context, tree any) error {
	if s.postpone(&change{tree: tree}) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree = tree
	return s.render(ctx)
}

func (s *Session) decode() error {
	tree, err := treefile.DecodeFile(s.page, s.res)
	if err != nil {
		s.logger.Warn("tree document", "page", s.page, "error", err)
		s.publish(Message{Type: MessageError, Error: err.Error()})
		return err
	}
	s.tree = tree
	return nil
}

// postpone records c when a dispatch is running. A later change replaces an
// earlier one.
func (s *Session) postpone(c *change) bool {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	if !s.dispatching {
		return false
	}
	s.pending = c
	return true
}

// runHandlers dispatches e and returns the change its handlers requested.
func (s *Session) runHandlers(e *host.Event) (c *change) {
	s.setDispatching(true)
	defer func() { c = s.setDispatching(false) }()
	s.doc.DispatchEvent(e)
	return nil
}

func (s *Session) setDispatching(on bool) *change {
	s.pmu.Lock()
	defer s.pmu.Unlock()
	s.dispatching = on
	c := s.pending
	s.pending = nil
	return c
}

// Dispatch delivers a browser event to the element at ev.Target and
// re-renders when a handler ran or a handler changed the tree.
func (s *Session) Dispatch(ctx context.Context, ev EventMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Type == "" {
		return false, errors.New("V004").WithDetail("event type is empty")
	}
	target, err := s.resolve(ev.Target)
	if err != nil {
		return false, err
	}

	e := host.NewEvent(strings.ToLower(ev.Type), target)
	e.Data = ev.Data
	c := s.runHandlers(e)

	// The registry stops propagation once a handler has run.
	handled := e.PropagationStopped()
	changed := false
	if c != nil {
		if c.reload {
			changed = s.decode() == nil
		} else {
			s.tree = c.tree
			changed = true
		}
	}
	if !handled && !changed {
		return false, nil
	}
	return handled, s.render(ctx)
}

// resolve walks the element-index path from the container.
func (s *Session) resolve(path []int) (host.Node, error) {
	var cur host.Node = s.container
	for depth, idx := range path {
		next := elementChild(cur, idx)
		if next == nil {
			return nil, errors.New("V004").WithDetailf("no element at %v (depth %d)", path, depth)
		}
		cur = next
	}
	return cur, nil
}

func elementChild(n host.Node, idx int) host.Node {
	if idx < 0 {
		return nil
	}
	seen := 0
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		if c.Type() != host.ElementNode {
			continue
		}
		if seen == idx {
			return c
		}
		seen++
	}
	return nil
}

func (s *Session) render(ctx context.Context) error {
	s.doc.Drain()
	if err := s.renderer.Render(ctx, s.tree, s.container); err != nil {
		return err
	}

	msg := Message{
		Type:      MessageRender,
		HTML:      s.container.InnerHTML(),
		Mutations: s.doc.Drain(),
	}
	for _, d := range s.renderer.Diagnostics() {
		msg.Diagnostics = append(msg.Diagnostics, d.Error())
	}
	s.publish(msg)
	return nil
}

func (s *Session) publish(msg Message) {
	if msg.Type == MessageRender {
		s.last = &msg
	}
	if s.onCycle != nil {
		s.onCycle(msg)
	}
}

// Current returns the state a newly connected browser needs: the last
// rendered container HTML without a mutation list.
func (s *Session) Current() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil
	}
	return &Message{
		Type:        MessageRender,
		HTML:        s.last.HTML,
		Diagnostics: s.last.Diagnostics,
	}
}

// Page returns the whole rendered page.
func (s *Session) Page() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.String()
}

// Document returns the session's host document.
func (s *Session) Document() *htmlhost.Document { return s.doc }

// Container returns the element the tree renders into.
func (s *Session) Container() *htmlhost.Node { return s.container }
