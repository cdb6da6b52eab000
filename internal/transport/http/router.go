// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services and translate domain errors to responses; no business logic lives
// here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardian/internal/platform/middleware"
	"guardian/internal/transport/http/shared"
)

// HealthChecker reports readiness of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig wires handlers and shared infrastructure into one router.
type RouterConfig struct {
	Logger  *slog.Logger
	Consent *ConsentHandler
	KBA     *KBAHandler
	Admin   *AdminHandler

	// Readiness dependencies, keyed by name for the /readyz payload.
	Checkers map[string]HealthChecker
}

// NewRouter assembles the full middleware stack and mounts all handlers.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyHandler(cfg.Checkers))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if cfg.Consent != nil {
		cfg.Consent.Register(r)
	}
	if cfg.KBA != nil {
		cfg.KBA.Register(r)
	}
	if cfg.Admin != nil {
		cfg.Admin.Register(r)
	}

	return r
}

func readyHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checkers))
		for name, checker := range checkers {
			if err := checker.Health(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}
		shared.WriteJSON(w, status, map[string]any{
			"status":       http.StatusText(status),
			"dependencies": deps,
		})
	}
}
