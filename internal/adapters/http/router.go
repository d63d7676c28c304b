// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. admin wraps the
// mutating project routes only.
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
	admin func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projectHandler.ListProjects)
		r.Get("/{slug}", projectHandler.GetProjectBySlug)

		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", projectHandler.CreateProject)
			r.Put("/{id}", projectHandler.UpdateProject)
			r.Delete("/{id}", projectHandler.DeleteProject)
		})
	})

	return r
}

// StandardMiddleware returns the global middleware chain, outermost first:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging →
//	SecurityHeaders → CORS → RateLimit → Timeout
//
// RateLimit is left out when disabled. metrics may be nil.
func StandardMiddleware(cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		middleware.OpenTelemetry(metrics),
		middleware.Logging(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS.AllowedOrigins, cfg.Guard.Header),
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		mws = append(mws, limiter.Middleware())
	}
	return append(mws, middleware.Timeout(cfg.Server.RequestTimeout))
}
