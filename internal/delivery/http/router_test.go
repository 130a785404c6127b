package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hms-backend/config"
	"hms-backend/internal/delivery/http/middleware"
	"hms-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *jwt.JWTService) {
	t.Helper()
	tokens := jwt.NewJWTService(config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", Expiry: time.Hour})
	r := NewRouter(Handlers{}, middleware.NewAuthMiddleware(tokens), middleware.NewCORSMiddleware(), middleware.NewMetricsMiddleware())
	return r.Setup(), tokens
}

func TestRouter_Access(t *testing.T) {
	router, tokens := newTestRouter(t)

	patientToken, err := tokens.GenerateToken(uuid.New(), "pat", "patient")
	require.NoError(t, err)
	doctorToken, err := tokens.GenerateToken(uuid.New(), "doc", "doctor")
	require.NoError(t, err)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"billing without token", http.MethodPost, "/api/payments", "", http.StatusUnauthorized, "No token provided"},
		{"billing as patient", http.MethodGet, "/api/bills", patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"billing as doctor", http.MethodPost, "/api/payments", doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"patient delete as doctor", http.MethodDelete, "/api/patients/" + uuid.NewString(), doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"portal as doctor", http.MethodGet, "/api/portal/bills", doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"doctor views as patient", http.MethodGet, "/api/doctor/patients", patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"prescribing as patient", http.MethodPost, "/api/prescriptions", patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"vitals as patient", http.MethodGet, "/api/health-vitals/" + uuid.NewString(), patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"portal vitals as doctor", http.MethodPost, "/api/portal/vitals", doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"referral as patient", http.MethodPost, "/api/referrals", patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"soap note as patient", http.MethodGet, "/api/soap-notes/appointment/" + uuid.NewString(), patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"refill request as doctor", http.MethodPost, "/api/refill-requests", doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"refill decision as patient", http.MethodPatch, "/api/refill-requests/" + uuid.NewString() + "/status", patientToken, http.StatusForbidden, "Insufficient permissions"},
		{"feedback as doctor", http.MethodPost, "/api/feedback", doctorToken, http.StatusForbidden, "Insufficient permissions"},
		{"templates without token", http.MethodGet, "/api/prescription-templates", "", http.StatusUnauthorized, "No token provided"},
		{"alert deletion unsupported", http.MethodDelete, "/api/patient-alerts/" + uuid.NewString(), doctorToken, http.StatusMethodNotAllowed, "Method not allowed"},
		{"garbage token", http.MethodGet, "/api/auth/me", "not-a-jwt", http.StatusUnauthorized, "Invalid or expired token"},
		{"unknown route", http.MethodGet, "/api/nowhere", "", http.StatusNotFound, "Route not found"},
		{"wrong method", http.MethodPut, "/api/bills", "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"wrong method on item route", http.MethodDelete, "/api/bills/" + uuid.NewString(), "", http.StatusMethodNotAllowed, "Method not allowed"},
		{"wrong method on payments", http.MethodPut, "/api/payments", patientToken, http.StatusMethodNotAllowed, "Method not allowed"},
		{"unknown root path", http.MethodGet, "/nowhere", "", http.StatusNotFound, "Route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestRouter_HealthAndPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/payments", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PrometheusExposition(t *testing.T) {
	router, _ := newTestRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hms_http_requests_total{method="GET",route="/api/health",status="200"}`)
}
