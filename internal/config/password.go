package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Accepted bcrypt cost range for the admin password hash.
const (
	MinBcryptCost = 10
	MaxBcryptCost = 14
)

// PasswordConfig hashes and checks the operator password that is exchanged for admin
// tokens. A non-empty Pepper is appended to the password before hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig builds a PasswordConfig from the admin section.
func NewPasswordConfig(admin AdminConfig) (*PasswordConfig, error) {
	if admin.BcryptCost < MinBcryptCost || admin.BcryptCost > MaxBcryptCost {
		return nil, fmt.Errorf("admin.bcrypt_cost must be between %d and %d, got %d",
			MinBcryptCost, MaxBcryptCost, admin.BcryptCost)
	}
	return &PasswordConfig{BcryptCost: admin.BcryptCost, Pepper: admin.Pepper}, nil
}

// HashPassword returns the bcrypt hash of the peppered password.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash. An empty or malformed hash
// never matches.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}

// HashCost returns the bcrypt cost storedHash was generated with, or an error when it
// is not a bcrypt hash.
func HashCost(storedHash string) (int, error) {
	cost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil {
		return 0, fmt.Errorf("not a bcrypt hash: %w", err)
	}
	return cost, nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}
