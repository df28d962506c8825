// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render/{format}  render a grid; body {config, series, width, height}
//	GET  /healthz          liveness probe
//	GET  /version          build information
//
// The response body of /render is the artifact itself with the format's
// content type. Errors are JSON, see package httputil for the shape and the
// status mapping.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gaugegrid/pkg/buildinfo"
	"github.com/matzehuels/gaugegrid/pkg/errors"
	"github.com/matzehuels/gaugegrid/pkg/httputil"
	"github.com/matzehuels/gaugegrid/pkg/observability"
	"github.com/matzehuels/gaugegrid/pkg/pipeline"
	"github.com/matzehuels/gaugegrid/pkg/render/gauge/config"
	"github.com/matzehuels/gaugegrid/pkg/series"
)

const (
	// DefaultMaxBodyBytes bounds a render request body.
	DefaultMaxBodyBytes = 4 << 20

	// DefaultRenderTimeout bounds a single render request.
	DefaultRenderTimeout = 30 * time.Second
)

// Server is the HTTP render service.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *log.Logger) Option          { return func(s *Server) { s.logger = l } }
func WithMaxBodyBytes(n int64) Option          { return func(s *Server) { s.maxBody = n } }
func WithRenderTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New creates a server rendering through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  log.Default(),
		maxBody: DefaultMaxBodyBytes,
		timeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/render/{format}", s.handleRender)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// =============================================================================
// Handlers
// =============================================================================

// RenderRequest is the body of POST /render/{format}. A missing config
// renders with the defaults; fields present overlay them.
type RenderRequest struct {
	Config  json.RawMessage `json:"config,omitempty"`
	Series  []series.Item   `json:"series"`
	Width   float64         `json:"width,omitempty"`
	Height  float64         `json:"height,omitempty"`
	Scale   float64         `json:"scale,omitempty"`
	Title   string          `json:"title,omitempty"`
	NoFonts bool            `json:"no_fonts,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := s.decode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	w.Header().Set("ETag", `"`+res.InputHash[:16]+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) decode(r *http.Request) (pipeline.Options, error) {
	var req RenderRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxBody))
	if err := dec.Decode(&req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}

	cfg, err := config.DecodeJSON(req.Config)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Config:  cfg,
		Series:  req.Series,
		Width:   req.Width,
		Height:  req.Height,
		Scale:   req.Scale,
		Title:   req.Title,
		NoFonts: req.NoFonts,
		Logger:  s.logger.With("request_id", httputil.GetRequestID(r.Context())),
	}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, r, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", httputil.GetRequestID(r.Context()), "error", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
}

// =============================================================================
// Middleware
// =============================================================================

// instrument reports every request to the HTTP hooks and logs it at debug
// level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		id := httputil.GetRequestID(r.Context())
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", dur,
			"request_id", id)
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

