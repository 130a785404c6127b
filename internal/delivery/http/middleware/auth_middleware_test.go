package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hms-backend/config"
	"hms-backend/internal/domain/entity"
	"hms-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTokens() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: testSecret, Expiry: time.Hour})
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	return body.Message
}

// echoIdentity answers 200 with the identity it found in context.
var echoIdentity = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Header().Set("X-User", identity.UserID.String())
	w.Header().Set("X-Role", identity.Role.String())
	w.WriteHeader(http.StatusOK)
})

func TestAuthenticate(t *testing.T) {
	tokens := newTokens()
	userID := uuid.New()
	valid, err := tokens.GenerateToken(userID, "dr.who", "doctor")
	require.NoError(t, err)
	badRole, err := tokens.GenerateToken(uuid.New(), "mallory", "superuser")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "No token provided"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "No token provided"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "No token provided"},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, "Invalid or expired token"},
		{"unknown role", "Bearer " + badRole, http.StatusUnauthorized, "Invalid or expired token"},
		{"valid", "Bearer " + valid, http.StatusOK, ""},
	}

	mw := NewAuthMiddleware(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(echoIdentity).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, decodeMessage(t, rec))
				return
			}
			assert.Equal(t, userID.String(), rec.Header().Get("X-User"))
			assert.Equal(t, "doctor", rec.Header().Get("X-Role"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	guarded := RequireRole(entity.RoleAdmin, entity.RoleDoctor)(echoIdentity)

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	for _, tt := range []struct {
		role   entity.Role
		status int
	}{
		{entity.RoleAdmin, http.StatusOK},
		{entity.RoleDoctor, http.StatusOK},
		{entity.RolePatient, http.StatusForbidden},
	} {
		t.Run(tt.role.String(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: uuid.New(), Role: tt.role}))
			rec := httptest.NewRecorder()

			guarded.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "Insufficient permissions", decodeMessage(t, rec))
			}
		})
	}
}
