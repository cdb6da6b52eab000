package middleware

import (
	"log/slog"
	"net/http"

	"guardian/pkg/platform/secrets"
)

// RequireAdminKey guards maintenance endpoints with a pre-shared key checked
// against its bcrypt hash. An empty hash disables the routes entirely.
func RequireAdminKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if keyHash == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"FORBIDDEN","message":"admin endpoints are disabled"}`))
				return
			}

			key := r.Header.Get("X-Admin-Key")
			if key == "" || secrets.Verify(key, keyHash) != nil {
				logger.WarnContext(ctx, "rejected admin request",
					"request_id", GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"FORBIDDEN","message":"invalid admin key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
