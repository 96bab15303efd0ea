package mockapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/redmonkez12/go-todo-client/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey ContextKey = "user_id"
)

// RequireAuth validates the bearer token and puts the user id in the context
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.RespondError(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.RespondError(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.VerifyToken(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		// The token may outlive its user when the mock restarts with a fixed key
		if _, err := a.users.GetByID(r.Context(), claims.UserID); err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httputil.RespondError(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok
}

// SecurityHeaders adds security-related headers to all responses.
// The mock only serves JSON, so nothing may be loaded from it.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		next.ServeHTTP(w, r)
	})
}
