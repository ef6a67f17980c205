// Package password hashes account passwords with bcrypt and mints the one-time tokens used for email verification and password resets.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	Cost = bcrypt.DefaultCost
	// MaxLength is bcrypt's input limit in bytes.
	MaxLength = 72

	tokenBytes = 32
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrTooLong         = fmt.Errorf("password cannot exceed %d bytes", MaxLength)
)

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmptyPassword
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword for any mismatch, including empty input.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}

// NewToken returns a random one-time token and the sha256 digest under which it is stored.
func NewToken() (raw, digest string, err error) {
	buf := make([]byte, tokenBytes)

	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	raw = hex.EncodeToString(buf)

	return raw, HashToken(raw), nil
}

func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
