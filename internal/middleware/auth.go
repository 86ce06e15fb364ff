package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-music-api/internal/model"
)

// accessTokenValidator is the slice of AuthService this middleware needs.
type accessTokenValidator interface {
	CurrentUser(accessToken string) (string, error)
}

type contextKey string

const userIDContextKey contextKey = "auth_user_id"

type AuthMiddleware struct {
	validator accessTokenValidator
}

func NewAuthMiddleware(validator accessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthorized(w, "missing or invalid authorization header")
			return
		}

		accessToken := strings.TrimSpace(header[7:])
		userID, err := m.validator.CurrentUser(accessToken)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}
