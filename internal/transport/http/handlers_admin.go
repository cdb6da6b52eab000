package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"guardian/internal/platform/middleware"
	"guardian/internal/transport/http/shared"
)

// MaintenanceService is the surface behind the on-demand admin sweeps. The
// same operations run on timers in the background worker; these endpoints
// exist so operators can force a sweep without waiting for the tick.
type MaintenanceService interface {
	CleanupExpiredRecords(ctx context.Context) (int, error)
	SendRenewalReminders(ctx context.Context, lead time.Duration) (int, error)
}

// SessionJanitor sweeps expired quiz sessions.
type SessionJanitor interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// AdminHandler exposes the maintenance sweeps behind the admin key.
type AdminHandler struct {
	maintenance MaintenanceService
	sessions    SessionJanitor
	renewalLead time.Duration
	adminHash   string
	logger      *slog.Logger
}

func NewAdminHandler(maintenance MaintenanceService, sessions SessionJanitor, renewalLead time.Duration, adminHash string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		maintenance: maintenance,
		sessions:    sessions,
		renewalLead: renewalLead,
		adminHash:   adminHash,
		logger:      logger,
	}
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminKey(h.adminHash, h.logger))
		r.Post("/admin/retention/sweep", h.handleRetentionSweep)
		r.Post("/admin/reminders/send", h.handleRenewalReminders)
		r.Post("/admin/sessions/sweep", h.handleSessionSweep)
	})
}

func (h *AdminHandler) handleRetentionSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	purged, err := h.maintenance.CleanupExpiredRecords(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "retention sweep failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"purged": purged})
}

func (h *AdminHandler) handleRenewalReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	emitted, err := h.maintenance.SendRenewalReminders(ctx, h.renewalLead)
	if err != nil {
		h.logger.ErrorContext(ctx, "renewal reminder run failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"emitted": emitted})
}

func (h *AdminHandler) handleSessionSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.sessions.CleanupExpired(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "session sweep failed", "error", err.Error())
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int{"removed": removed})
}
