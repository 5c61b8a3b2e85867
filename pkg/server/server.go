// Package server exposes a loaded scene over HTTP for inspection.
//
// The server wraps a [store.Memory]: read endpoints derive the projected
// tree, focus, hit tests and overlay offsets from the current state, while
// write endpoints go through the same notification interface the pointer
// sampler and the explorer use.
//
//	srv := server.New(st, server.Options{Logger: logger})
//	err := srv.Run(ctx, "127.0.0.1:7070")
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boxscope/pkg/pointer"
	"github.com/matzehuels/boxscope/pkg/scene"
	"github.com/matzehuels/boxscope/pkg/store"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Logger *log.Logger

	// Interval is the pointer throttle interval. Zero selects
	// pointer.DefaultInterval.
	Interval time.Duration

	// ZeroWidth decides how pointer moves are handled while the display
	// width is zero.
	ZeroWidth pointer.ZeroWidthPolicy
}

// Server serves the inspection API.
type Server struct {
	store     *store.Memory
	projector *scene.Projector
	views     *store.Views
	logger    *log.Logger
	zeroWidth pointer.ZeroWidthPolicy
	router    chi.Router

	// now is the clock pointer events are stamped with.
	now func() time.Time

	mu      sync.Mutex
	sampler *pointer.Sampler
}

// New creates a server backed by st.
func New(st *store.Memory, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	projector := scene.NewProjector(logger)
	s := &Server{
		store:     st,
		projector: projector,
		views:     store.NewViews(projector),
		logger:    logger,
		zeroWidth: opts.ZeroWidth,
		now:       time.Now,
		sampler:   pointer.NewSampler(st, pointer.Options{Interval: opts.Interval, Logger: logger}),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/state", s.handleState)
	r.Get("/tree", s.handleTree)
	r.Get("/hit", s.handleHit)
	r.Get("/offset/{id}", s.handleOffset)

	r.Put("/display", s.handleDisplay)
	r.Post("/focus", s.handleSetFocus)
	r.Delete("/focus", s.handleClearFocus)
	r.Post("/select", s.handleSelect)
	r.Post("/pointer/{event}", s.handlePointer)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
