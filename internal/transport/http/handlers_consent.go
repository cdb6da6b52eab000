package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian/internal/consent"
	"guardian/internal/consent/service"
	"guardian/internal/kba"
	"guardian/internal/platform/middleware"
	"guardian/internal/transport/http/shared"
	"guardian/pkg/domain"
	dErrors "guardian/pkg/domain-errors"
)

// ConsentService is the orchestrator surface the consent handler needs.
type ConsentService interface {
	Initiate(ctx context.Context, req service.InitiateRequest) (*service.InitiateResult, error)
	VerifyKBA(ctx context.Context, recordID domain.ConsentID, token domain.SessionToken, answers map[string]int) (*kba.VerificationResult, error)
	VerifyPayment(ctx context.Context, recordID domain.ConsentID, paymentReference string, paymentVerified bool) error
	Grant(ctx context.Context, recordID domain.ConsentID) error
	Revoke(ctx context.Context, recordID domain.ConsentID, reason string) error
	ConfirmEmail(ctx context.Context, token string, approve bool) (domain.UserID, error)
	Status(ctx context.Context, childUserID domain.UserID) (*consent.StatusReport, error)
	History(ctx context.Context, childUserID domain.UserID) ([]consent.HistoryEntry, error)
}

// ConsentHandler exposes the consent lifecycle over HTTP.
type ConsentHandler struct {
	consent      ConsentService
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

func NewConsentHandler(consent ConsentService, logger *slog.Logger, jwtValidator middleware.JWTValidator) *ConsentHandler {
	return &ConsentHandler{
		consent:      consent,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the consent routes. The email confirmation endpoint is
// public: parents reach it from a link in their inbox, without a session.
func (h *ConsentHandler) Register(r chi.Router) {
	r.Get("/consent/confirm", h.handleConfirmEmail)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/consent", h.handleInitiate)
		r.Post("/consent/{recordID}/kba", h.handleVerifyKBA)
		r.Post("/consent/{recordID}/payment", h.handleVerifyPayment)
		r.Post("/consent/{recordID}/grant", h.handleGrant)
		r.Post("/consent/{recordID}/revoke", h.handleRevoke)
		r.Get("/consent/status/{userID}", h.handleStatus)
		r.Get("/consent/history/{userID}", h.handleHistory)
	})
}

type initiateRequest struct {
	ChildUserID string   `json:"childUserId"`
	ParentEmail string   `json:"parentEmail"`
	ParentName  string   `json:"parentName"`
	Method      string   `json:"verificationMethod"`
	Scope       []string `json:"consentScope"`
}

type initiateResponse struct {
	ConsentRecordID domain.ConsentID             `json:"consentRecordId"`
	KBASession      *service.GeneratedKBASession `json:"kbaSession,omitempty"`
	EmailToken      string                       `json:"confirmationToken,omitempty"`
}

func (h *ConsentHandler) handleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	childID, err := domain.ParseUserID(req.ChildUserID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	method, err := domain.ParseVerificationMethod(req.Method)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	scope, err := domain.ParseConsentScopes(req.Scope)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.consent.Initiate(ctx, service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: req.ParentEmail,
		ParentName:  req.ParentName,
		Method:      method,
		Scope:       scope,
	})
	if err != nil {
		h.logError(ctx, "initiate consent failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, initiateResponse{
		ConsentRecordID: result.ConsentRecordID,
		KBASession:      result.KBASession,
		EmailToken:      result.EmailToken,
	})
}

type verifyKBARequest struct {
	SessionID string         `json:"sessionId"`
	Answers   map[string]int `json:"answers"`
}

func (h *ConsentHandler) handleVerifyKBA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := domain.ParseConsentID(chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req verifyKBARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.consent.VerifyKBA(ctx, recordID, domain.SessionToken(req.SessionID), req.Answers)
	if err != nil {
		h.logError(ctx, "kba verification failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

type verifyPaymentRequest struct {
	PaymentReference string `json:"paymentReference"`
	PaymentVerified  bool   `json:"paymentVerified"`
}

func (h *ConsentHandler) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := domain.ParseConsentID(chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.consent.VerifyPayment(ctx, recordID, req.PaymentReference, req.PaymentVerified); err != nil {
		h.logError(ctx, "payment verification failed", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ConsentHandler) handleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := domain.ParseConsentID(chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.consent.Grant(ctx, recordID); err != nil {
		h.logError(ctx, "grant consent failed", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type revokeRequest struct {
	Reason string `json:"reason"`
}

func (h *ConsentHandler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := domain.ParseConsentID(chi.URLParam(r, "recordID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req revokeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	if err := h.consent.Revoke(ctx, recordID, req.Reason); err != nil {
		h.logError(ctx, "revoke consent failed", err)
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleConfirmEmail resolves the link a parent receives by mail:
// GET /consent/confirm?token=...&action=approve|deny
func (h *ConsentHandler) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawToken := r.URL.Query().Get("token")
	action := r.URL.Query().Get("action")
	if rawToken == "" || (action != "approve" && action != "deny") {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "token and action (approve|deny) are required"))
		return
	}

	userID, err := h.consent.ConfirmEmail(ctx, rawToken, action == "approve")
	if err != nil {
		h.logError(ctx, "email confirmation failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"userId": userID,
		"action": action,
	})
}

func (h *ConsentHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	report, err := h.consent.Status(ctx, userID)
	if err != nil {
		h.logError(ctx, "consent status lookup failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, report)
}

func (h *ConsentHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := domain.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	history, err := h.consent.History(ctx, userID)
	if err != nil {
		h.logError(ctx, "consent history lookup failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (h *ConsentHandler) logError(ctx context.Context, msg string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeInfra {
		h.logger.ErrorContext(ctx, msg,
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(ctx),
	)
}
