package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/sizing-assistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func newTestJWTService(_ *testing.T) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: 12,
		Issuer:          "sizing-assistant",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := newTestJWTService(t)

	token, expiresAt, err := service.GenerateToken("session-1")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), expiresAt, time.Minute)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "session-1", claims.Subject)
	assert.Equal(t, "sizing-assistant", claims.Issuer)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_GenerateToken_EmptySession(t *testing.T) {
	_, _, err := newTestJWTService(t).GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := newTestJWTService(t)
	other := NewJWTService(&config.JWTConfig{
		Secret:          "different-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 12,
		Issuer:          "sizing-assistant",
	})

	token, _, err := service.GenerateToken("session-1")
	require.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := newTestJWTService(t)

	for _, token := range []string{"", "invalid", "invalid.token", "invalid.token.format.extra", "invalid.base64.signature"} {
		claims, err := service.ValidateToken(token)
		assert.Error(t, err, token)
		assert.Nil(t, claims, token)
	}
}

func signClaims(t *testing.T, claims *Claims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	token := signClaims(t, &Claims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sizing-assistant",
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	}, jwt.SigningMethodHS256)

	_, err := newTestJWTService(t).ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ValidateToken_WrongIssuer(t *testing.T) {
	token := signClaims(t, &Claims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	_, err := newTestJWTService(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongAlgorithm(t *testing.T) {
	token := signClaims(t, &Claims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sizing-assistant",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS512)

	_, err := newTestJWTService(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_MissingSession(t *testing.T) {
	token := signClaims(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sizing-assistant",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	_, err := newTestJWTService(t).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := newTestJWTService(t)
	token, _, err := service.GenerateToken("session-9")
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-9", getter.GetSessionID())

	_, err = service.AsTokenValidator().ValidateToken("nope")
	assert.Error(t, err)
}
