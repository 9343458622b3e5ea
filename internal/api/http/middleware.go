package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
	"rentmart-backend/internal/security"
)

// Authenticate validates the Bearer token and places the claims in the
// request context.
func Authenticate(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthenticated(w, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthenticated(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireRole gates a route to one role. ADMIN passes every gate.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFrom(r.Context())
			if !ok {
				writeUnauthenticated(w, "missing credentials")
				return
			}
			if claims.Role != role && claims.Role != domain.RoleAdmin {
				writeError(w, domain.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging logs each request at debug level.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}
