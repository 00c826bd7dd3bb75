// Package apikey gates routes behind pre-shared keys carried in request headers.
package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"datasentinel/pkg/requestcontext"
)

const (
	HeaderAPIKey   = "X-API-Key"
	HeaderAdminKey = "X-Admin-Key"
)

// RequireAPIKey rejects requests whose X-API-Key does not match expected.
// An empty expected key rejects everything.
func RequireAPIKey(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireHeader(HeaderAPIKey, expected, "missing or invalid API key", logger)
}

// RequireAdminKey guards admin-only capabilities (restriction approval, risk
// reset, partner-wide restriction). It is mounted in addition to RequireAPIKey.
func RequireAdminKey(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return requireHeader(HeaderAdminKey, expected, "admin key required", logger)
}

func requireHeader(header, expected, description string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !Matches(r.Header.Get(header), expected) {
				ctx := r.Context()
				logger.WarnContext(ctx, "credential rejected",
					"header", header,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Matches compares a presented key against the expected one in constant time.
func Matches(presented, expected string) bool {
	if expected == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) == 1
}
