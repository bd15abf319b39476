package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultSessionTokenHours is how long a session token stays valid when
// JWT_EXPIRATION_HOURS is not set.
const DefaultSessionTokenHours = 12

// JWTConfig holds configuration for signing and validating session tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS (default: 12).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationHours := DefaultSessionTokenHours
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		expirationHours = hours
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
		Issuer:          "sizing-assistant",
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// Expiration is the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
