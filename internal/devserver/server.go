// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

const (
	// DefaultAddr matches the address the client targets by default.
	DefaultAddr = "127.0.0.1:8000"

	// MaxRequestBodySize bounds request bodies.
	MaxRequestBodySize = 1 << 20 // 1MB

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server. Zero values select defaults.
type Options struct {
	Addr           string
	AllowedOrigins []string
	RateLimit      float64 // requests per second, 0 disables limiting
	Burst          int
	Latency        time.Duration // artificial delay before each answer
}

// Server is the mock backend.
type Server struct {
	opts    Options
	router  *chi.Mux
	limiter *rate.Limiter

	indexVersion atomic.Int64
	requests     atomic.Int64
}

// New creates a server with its routes and middleware installed.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	s := &Server{
		opts:   opts,
		router: chi.NewRouter(),
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst)
	}
	s.indexVersion.Store(1)

	s.router.Use(middleware.RequestID)
	s.router.Use(loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(s.rateLimit)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleRoot)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze_title", s.handleAnalyze)
		r.Post("/chat", s.handleChat)
		r.Post("/admin/rebuild_index", s.handleRebuildIndex)
	})
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// IndexVersion returns how many times the index has been built.
func (s *Server) IndexVersion() int64 {
	return s.indexVersion.Load()
}

// Requests returns the number of content requests served.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("SERVER_START | addr=%s origins=%v rate_limit=%g", ln.Addr(), s.opts.AllowedOrigins, s.opts.RateLimit)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("SERVER_SHUTDOWN | addr=%s", ln.Addr())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	}
}
