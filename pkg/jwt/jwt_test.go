package jwt

import (
	"strings"
	"testing"
	"time"

	"hms-backend/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func newService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{Secret: secret, Expiry: time.Hour})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(secret)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "dr.house", "doctor")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "dr.house", claims.Username)
	assert.Equal(t, "doctor", claims.Role)
}

func TestValidateToken_Tampered(t *testing.T) {
	svc := newService(secret)
	token, err := svc.GenerateToken(uuid.New(), "alice", "patient")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Re-sign a payload claiming admin with a different key.
	forged, err := newService("ffffffffffffffffffffffffffffffff").GenerateToken(uuid.New(), "alice", "admin")
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = svc.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newService("ffffffffffffffffffffffffffffffff").GenerateToken(uuid.New(), "bob", "admin")
	require.NoError(t, err)

	_, err = newService(secret).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService(secret)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(uuid.New(), "carol", "admin")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_NoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: uuid.New(), Username: "eve", Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newService(secret).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newService(secret).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
