// Package shared holds the JSON envelope helpers used by every handler.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "guardian/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope. The code field carries the stable
// domain error code so clients can branch without parsing messages.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the HTTP envelope.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, statusFor(code), ErrorResponse{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput,
		dErrors.CodeNotAMinor, dErrors.CodeTokenInvalid:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeKBAFailed, dErrors.CodePaymentFailed:
		return http.StatusForbidden
	case dErrors.CodeUserNotFound, dErrors.CodeRecordNotFound, dErrors.CodeSessionNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeConsentAlreadyExists, dErrors.CodeConsentAlreadyGranted:
		return http.StatusConflict
	case dErrors.CodeSessionExpired, dErrors.CodeTokenExpired:
		return http.StatusGone
	case dErrors.CodeMaxAttemptsExceeded:
		return http.StatusTooManyRequests
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInfra:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
