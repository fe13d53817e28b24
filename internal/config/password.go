package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxHashInputBytes is the longest input bcrypt accepts.
const maxHashInputBytes = 72

// PasswordConfig holds configuration for student password hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig validates and returns a hashing configuration. A cost of
// zero selects the default of 12.
func NewPasswordConfig(cost int, pepper string) (*PasswordConfig, error) {
	if cost == 0 {
		cost = 12
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     pepper,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	// bcrypt only reads the first 72 bytes; a long pepper would crowd out the password.
	if len(c.Pepper) > 32 {
		return fmt.Errorf("password pepper too long: %d bytes (max 32)", len(c.Pepper))
	}
	return nil
}

// MaxPasswordBytes is the longest password, in bytes, that still fits
// alongside the pepper.
func (c *PasswordConfig) MaxPasswordBytes() int {
	return maxHashInputBytes - len(c.Pepper)
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
