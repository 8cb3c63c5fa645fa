package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/campuspool/ridepool/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// UserIDKey is the context key for the authenticated user ID
const UserIDKey ContextKey = "user_id"

// RequireUser extracts the caller's user ID from the X-User-ID header and
// stores it in the request context. The mobile client sends the Supabase
// session user id here; full token validation lives at the gateway, so this
// service only checks the id is a well-formed UUID.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			response.Unauthorized(w, "X-User-ID header required")
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			response.Unauthorized(w, "Invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
