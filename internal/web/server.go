// Package web provides the HTTP server and handlers for the Q&A dataset editor.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/qaeditor/internal/config"
	"github.com/JonMunkholm/qaeditor/internal/core"
	"github.com/JonMunkholm/qaeditor/internal/telemetry"
	appmw "github.com/JonMunkholm/qaeditor/internal/web/middleware"
)

// Server is the HTTP server for the editor.
type Server struct {
	service  *core.Service
	cfg      *config.Config
	events   http.Handler
	router   *chi.Mux
	server   *http.Server
	limiters []*rateLimiter
}

// NewServer creates a Server. events serves the change-feed websocket and
// may be nil, in which case /api/events is not registered.
func NewServer(service *core.Service, cfg *config.Config, events http.Handler) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		events:  events,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(telemetry.HTTPMiddleware(s.cfg.Telemetry.ServiceName))
	s.router.Use(middleware.RequestID)
	s.router.Use(appmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestMetadata)

	// Security hardening
	s.router.Use(s.securityHeaders)

	if s.cfg.Rate.Enabled {
		s.router.Use(s.newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	// The change feed stays open indefinitely, so it sits outside the
	// request timeout and compression.
	if s.events != nil {
		s.router.With(appmw.APIKeyAuth(s.cfg.Security)).Get("/api/events", s.events.ServeHTTP)
	}

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
		r.Use(middleware.Compress(5))

		// Pages
		r.Get("/", s.handleEditor)
		r.Get("/partials/rows", s.handleRowsPartial)

		r.Route("/api", func(r chi.Router) {
			r.Use(appmw.APIKeyAuth(s.cfg.Security))

			// Rows
			r.Get("/rows", s.handleListRows)
			r.Post("/rows", s.handleAddRow)
			r.Patch("/rows/{key}", s.handleUpdateRow)
			r.Delete("/rows/{key}", s.handleDeleteRow)

			// Generation
			r.With(s.routeLimit(s.cfg.Rate.GenerateLimit)).
				Post("/rows/{key}/generate/{field}", s.handleGenerate)

			// Import / export
			r.Group(func(r chi.Router) {
				r.Use(s.routeLimit(s.cfg.Rate.ImportLimit))
				r.Post("/import", s.handleImport)
				r.Post("/import/preview", s.handleImportPreview)
			})
			r.Get("/export", s.handleExport)
			r.Get("/template", s.handleDownloadTemplate)

			// Settings
			r.Get("/settings", s.handleGetSettings)
			r.Patch("/settings", s.handleUpdateSettings)
			r.Post("/settings/intents", s.handleAddIntent)
			r.Delete("/settings/intents/{intent}", s.handleRemoveIntent)
			r.Post("/settings/theme", s.handleToggleTheme)
			r.Post("/settings/test-key", s.handleTestCredential)

			// Audit and status
			r.Get("/audit", s.handleAuditLog)
			r.Get("/status", s.handleStatus)
		})
	})
}

// routeLimit returns a per-route limiter, or a pass-through when rate
// limiting is disabled or perMinute is not positive.
func (s *Server) routeLimit(perMinute int) func(http.Handler) http.Handler {
	if !s.cfg.Rate.Enabled || perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.newRateLimiter(perMinute, time.Minute).middleware
}

func (s *Server) newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := newRateLimiter(rate, window)
	s.limiters = append(s.limiters, rl)
	return rl
}

// Start begins listening for HTTP requests. It returns nil after Shutdown,
// including when Shutdown ran before Start.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and its background limiters.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, rl := range s.limiters {
		rl.stop()
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// The page ships its script and style inline
		if s.cfg.Security.EnableCSP {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		}

		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
