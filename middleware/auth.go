package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"spendbook/backend/models"
	"spendbook/backend/repository"
)

// Context keys. A private type keeps them from colliding with other
// packages' context values.
type contextKey string

const UserIDKey contextKey = "user_id"

// Auth authenticates requests with HTTP Basic credentials checked against
// the users table and stores the resolved user ID on the request context.
func Auth(users repository.UserRepository) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					slog.ErrorContext(r.Context(), "error looking up user", "username", username, "error", err)
				}
				unauthorized(w)
				return
			}

			if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
				slog.WarnContext(r.Context(), "invalid credentials", "username", username)
				unauthorized(w)
				return
			}

			if !user.IsActive {
				slog.WarnContext(r.Context(), "inactive user rejected", "username", username)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user ID from the request
// context. Empty means the request never passed through Auth.
func GetUserIDFromContext(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="spendbook"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Detail:     "Credentials are invalid",
		StatusCode: http.StatusUnauthorized,
	})
}
