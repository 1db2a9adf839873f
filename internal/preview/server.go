package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/events"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/treefile"
)

// WebSocketPath is the route browsers connect to.
const WebSocketPath = "/_vtree/ws"

// Options configures the preview server.
type Options struct {
	// Config is the project configuration.
	Config *config.Config

	// Resolver resolves component and action names in the tree document.
	Resolver treefile.Resolver

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Tracer defaults to the global provider's tracer.
	Tracer trace.Tracer

	// OnReload is called after every reload with the number of browsers
	// that were notified.
	OnReload func(clients int, err error)
}

// Server is the live preview server.
type Server struct {
	config     *config.Config
	options    Options
	logger     *slog.Logger
	tracer     trace.Tracer
	session    *Session
	hub        *Hub
	watcher    *Watcher
	router     chi.Router
	metrics    *prometheus.Registry
	httpServer *http.Server
	script     string
	mu         sync.Mutex
	running    bool
}

// New creates a preview server for cfg.Page.
func New(options Options) (*Server, error) {
	cfg := options.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "preview")

	s := &Server{
		config:  cfg,
		options: options,
		logger:  logger,
		tracer:  options.Tracer,
		hub:     NewHub(logger),
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}

	var metrics *render.Metrics
	if cfg.Metrics.Enabled {
		s.metrics = prometheus.NewRegistry()
		s.metrics.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = render.NewMetrics(
			render.WithRegistry(s.metrics),
			render.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	reg := events.NewRegistry(
		events.WithEvents(cfg.Render.Events...),
		events.WithLogger(logger),
		events.WithDispatchHook(metrics.DispatchHook()),
	)
	renderer := render.New(reg,
		render.WithLogger(logger),
		render.WithMetrics(metrics),
		render.WithMaxDepth(cfg.Render.MaxComponentDepth),
		render.WithTracer(s.tracer),
	)

	session, err := NewSession(SessionOptions{
		Page:      cfg.PagePath(),
		Container: cfg.Container,
		Resolver:  options.Resolver,
		Renderer:  renderer,
		Logger:    logger,
		OnCycle:   s.hub.Broadcast,
	})
	if err != nil {
		return nil, err
	}
	s.session = session

	eventsJSON, err := json.Marshal(reg.Events())
	if err != nil {
		return nil, err
	}
	s.script = fmt.Sprintf(ClientScript, cfg.Container, eventsJSON)

	s.hub.OnConnect = session.Current
	s.hub.OnEvent = s.handleEvent

	if cfg.Preview.Watch {
		s.watcher = NewWatcher(cfg.PagePath(), DefaultDebounce, logger)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Tracing(s.tracer))
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", s.handlePage)
	r.Get(WebSocketPath, s.hub.HandleWebSocket)
	if s.metrics != nil {
		r.Handle(s.config.Metrics.Path, promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Session returns the rendered page session.
func (s *Server) Session() *Session { return s.session }

// Hub returns the browser connection hub.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page := s.session.Page()
	if i := strings.LastIndex(page, "</body>"); i >= 0 {
		page = page[:i] + s.script + page[i:]
	} else {
		page += s.script
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleEvent(r *http.Request, ev EventMessage) *Message {
	handled, err := s.traceEvent(r, ev, func(ctx context.Context) (bool, error) {
		return s.session.Dispatch(ctx, ev)
	})
	if err != nil {
		s.logger.Warn("preview event", "type", ev.Type, "target", ev.Target, "error", err)
		return &Message{Type: MessageError, Error: err.Error()}
	}
	s.logger.Debug("preview event", "type", ev.Type, "target", ev.Target, "handled", handled)
	return nil
}

// Reload re-reads the tree document and pushes the result to browsers.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	err := s.session.Reload(ctx)
	if err == nil {
		s.logger.Info("rendered", "page", s.config.Page, "duration", time.Since(start).Round(time.Microsecond))
	}
	if s.options.OnReload != nil {
		s.options.OnReload(s.hub.ClientCount(), err)
	}
	return err
}

// Start renders the page, starts the watcher and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	// A broken document is reported in the browser; keep serving.
	s.Reload(ctx)

	if s.watcher != nil {
		s.watcher.OnChange = func() { s.Reload(ctx) }
		go func() {
			if err := s.watcher.Run(ctx); err != nil {
				s.logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	s.httpServer = &http.Server{
		Addr:              s.config.PreviewAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("preview running", "url", s.config.PreviewURL())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop closes browser connections and shuts the HTTP server down.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.hub.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}
