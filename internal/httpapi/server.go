package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nfalab/machina/pkg/buildinfo"
	"github.com/nfalab/machina/pkg/pipeline"
	"github.com/nfalab/machina/pkg/session"
	"github.com/nfalab/machina/pkg/store"
	"github.com/nfalab/machina/pkg/workbench"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8466"

// Server timeouts. The write timeout leaves headroom for PNG renders of
// large automata.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server. Converter is required; every other field
// falls back to a working default: an in-memory document store, an
// uncached pipeline runner, a fresh session manager, and the default
// logger.
type Options struct {
	Addr      string
	Converter workbench.Converter
	Sessions  *session.Manager
	Store     store.Store
	Runner    *pipeline.Runner
	Logger    *log.Logger
}

// Server routes API requests to the workbench, pipeline, converter, and
// document store.
type Server struct {
	addr      string
	logger    *log.Logger
	converter workbench.Converter
	sessions  *session.Manager
	store     store.Store
	runner    *pipeline.Runner

	// ownSessions marks a manager created here rather than passed in;
	// only those are closed by Close.
	ownSessions bool
}

// NewServer creates a Server from opts, filling defaults for any nil
// component.
func NewServer(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}

	s := &Server{
		addr:      opts.Addr,
		logger:    opts.Logger,
		converter: opts.Converter,
		sessions:  opts.Sessions,
		store:     opts.Store,
		runner:    opts.Runner,
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(opts.Converter, 0)
		s.ownSessions = true
	}
	return s
}

// Handler builds the API router. It is exposed separately from Run so
// tests can drive the full routing stack through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/graph", s.handleGraph)
		r.Post("/render", s.handleRender)
		r.Post("/convert/{op}", s.handleConvert)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleSessionCreate)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleSessionGet)
				r.Delete("/", s.handleSessionDelete)
				r.Post("/edits", s.handleSessionEdit)
				r.Post("/submit", s.handleSessionSubmit)
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.handleDocumentSave)
			r.Get("/", s.handleDocumentList)
			r.Get("/{documentID}", s.handleDocumentGet)
			r.Delete("/{documentID}", s.handleDocumentDelete)
		})
	})

	r.Get("/healthz", s.handleHealth)
	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	s.logger.Info("http api listening", "addr", s.addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources the server created itself. Components passed
// in through Options stay open; their owners close them.
func (s *Server) Close() {
	if s.ownSessions {
		s.sessions.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
