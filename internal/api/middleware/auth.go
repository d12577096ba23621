package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/evansarr33/sav-simulateur/internal/api/response"
	"github.com/evansarr33/sav-simulateur/internal/identity"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// AuthMiddleware resolves bearer credentials to caller identities
type AuthMiddleware struct {
	resolver identity.Resolver
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(resolver identity.Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate validates the bearer credential. Absence or invalidity yields
// a uniform 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		id, err := m.resolver.Resolve(r.Context(), parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired credential")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, id.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, id.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the caller's user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmail gets the caller's email from context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}
