package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian/internal/kba"
	"guardian/internal/platform/middleware"
	"guardian/internal/transport/http/shared"
	"guardian/pkg/domain"
)

// QuizService is the session manager surface the KBA handler needs.
type QuizService interface {
	Status(ctx context.Context, token domain.SessionToken) (kba.SessionStatus, error)
}

// KBAHandler exposes read-only quiz session state. Sessions are created
// through consent initiation and consumed through KBA verification; this
// endpoint lets the quiz UI poll expiry and remaining attempts.
type KBAHandler struct {
	quiz         QuizService
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

func NewKBAHandler(quiz QuizService, logger *slog.Logger, jwtValidator middleware.JWTValidator) *KBAHandler {
	return &KBAHandler{
		quiz:         quiz,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

func (h *KBAHandler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/kba/sessions/{token}", h.handleSessionStatus)
	})
}

func (h *KBAHandler) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := domain.SessionToken(chi.URLParam(r, "token"))

	status, err := h.quiz.Status(ctx, token)
	if err != nil {
		h.logger.WarnContext(ctx, "session status lookup failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, status)
}
