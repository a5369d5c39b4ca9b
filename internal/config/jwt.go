package config

import (
	"fmt"
	"time"
)

// MinJWTSecretLength is the shortest accepted HMAC signing secret, in bytes.
const MinJWTSecretLength = 32

// JWTConfig holds the signing secret and lifetime of admin tokens. It is the jwt
// section of Config, so it can come from the config file, CAREER_JWT_* or the
// JWT_SECRET and JWT_EXPIRATION_HOURS aliases.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Enabled reports whether a signing secret is configured. Without one the admin
// endpoints are switched off.
func (c *JWTConfig) Enabled() bool {
	return c != nil && c.Secret != ""
}

// TTL is the lifetime of an issued token.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// Validate checks the secret length and the token lifetime.
func (c *JWTConfig) Validate() error {
	switch {
	case c.Secret == "":
		return fmt.Errorf("jwt.secret (JWT_SECRET) is required")
	case len(c.Secret) < MinJWTSecretLength:
		return fmt.Errorf("jwt.secret must be at least %d bytes, got %d", MinJWTSecretLength, len(c.Secret))
	case c.ExpirationHours < 1:
		return fmt.Errorf("jwt.expiration_hours must be at least 1, got %d", c.ExpirationHours)
	}
	return nil
}
