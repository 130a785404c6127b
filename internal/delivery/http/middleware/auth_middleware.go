package middleware

import (
	"context"
	"net/http"
	"strings"

	"hms-backend/internal/domain/entity"
	"hms-backend/pkg/jwt"
	"hms-backend/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller as carried by the session token.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     entity.Role
}

// TokenValidator verifies session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
}

func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Authenticate resolves the caller from the bearer token. It only checks
// the token; it never reads the database.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "No token provided")
			return
		}

		// Extract token from "Bearer <token>"
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.Unauthorized(w, "No token provided")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		role, ok := entity.ParseRole(claims.Role)
		if !ok {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := WithIdentity(r.Context(), Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     role,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity returns a copy of ctx carrying the caller identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity extracts the caller identity from context
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
