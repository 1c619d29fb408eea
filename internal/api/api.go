// Package api provides HTTP handlers and the main API server logic for the
// Keka Rehab Services intake bot.
//
// It exposes the chat endpoint the website widget talks to, the analytics
// event sink, and admin endpoints for handoffs and reporting.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kekarehab/intakebot/internal/dialog"
	"github.com/kekarehab/intakebot/internal/store"
)

// Server configuration constants
const (
	// DefaultAddr is the default listen address for the API server
	DefaultAddr = ":8080"
	// DefaultReadTimeout bounds how long reading a request may take
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout bounds how long writing a response may take
	DefaultWriteTimeout = 15 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Opts holds configuration options for the API server.
type Opts struct {
	Addr             string
	AdminToken       string
	AnalyticsEnabled bool
	IPHashSalt       string
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithAdminToken sets the bearer token protecting the admin endpoints.
// When empty, the admin endpoints are disabled.
func WithAdminToken(token string) Option {
	return func(o *Opts) { o.AdminToken = token }
}

// WithAnalyticsEnabled toggles persistence of analytics events.
func WithAnalyticsEnabled(enabled bool) Option {
	return func(o *Opts) { o.AnalyticsEnabled = enabled }
}

// WithIPHashSalt sets the salt mixed into client IP hashes.
func WithIPHashSalt(salt string) Option {
	return func(o *Opts) { o.IPHashSalt = salt }
}

// Server wires the dialog engine and store behind HTTP endpoints.
type Server struct {
	engine *dialog.Engine
	st     store.Store
	cfg    Opts
	httpd  *http.Server
}

// NewServer creates an API server around the given engine and store.
func NewServer(engine *dialog.Engine, st store.Store, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{engine: engine, st: st, cfg: cfg}
}

// Handler builds the route table. Exposed separately so tests can exercise
// the server without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.chatHandler)
	mux.HandleFunc("/api/events", s.eventsHandler)
	mux.HandleFunc("/api/handoffs", s.handoffsHandler)
	mux.HandleFunc("/api/analytics/summary", s.analyticsSummaryHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// Run starts the API server and blocks until the context is canceled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	s.httpd = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: API server listening", "addr", s.cfg.Addr, "analytics_enabled", s.cfg.AnalyticsEnabled)
		if err := s.httpd.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := s.httpd.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server.Run: graceful shutdown failed", "error", err)
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		slog.Info("Server.Run: API server stopped")
		return nil
	case err := <-errCh:
		slog.Error("Server.Run: listener failed", "error", err)
		return fmt.Errorf("server listener failed: %w", err)
	}
}

// clientIPHash derives a salted hash of the caller's IP so sessions can be
// correlated without storing raw addresses.
func (s *Server) clientIPHash(r *http.Request) string {
	ip := clientIP(r)
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s.cfg.IPHashSalt + ip))
	return hex.EncodeToString(sum[:16])
}

// clientIP extracts the caller's IP, honoring X-Forwarded-For from the
// reverse proxy in front of the bot.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// authorized checks the bearer token on admin endpoints.
func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.AdminToken == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	return auth == "Bearer "+s.cfg.AdminToken
}
