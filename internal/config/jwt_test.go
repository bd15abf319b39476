package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key-0123", cfg.Secret)
	assert.Equal(t, DefaultSessionTokenHours, cfg.ExpirationHours)
	assert.Equal(t, 12*time.Hour, cfg.Expiration())
	assert.Equal(t, "sizing-assistant", cfg.Issuer)
}

func TestNewJWTConfig_CustomExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-0123")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		wantErr    string
	}{
		{name: "missing secret", secret: "", wantErr: "JWT_SECRET is required"},
		{name: "short secret", secret: "short", wantErr: "at least 16 characters"},
		{name: "bad expiration", secret: "test-secret-key-0123", expiration: "soon", wantErr: "invalid JWT_EXPIRATION_HOURS"},
		{name: "zero expiration", secret: "test-secret-key-0123", expiration: "0", wantErr: "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
