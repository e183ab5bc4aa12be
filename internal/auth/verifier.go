package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks a username and password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}

// BcryptVerifier accepts a single configured user whose password is stored
// as a bcrypt hash.
type BcryptVerifier struct {
	username string
	hash     []byte
}

// NewBcryptVerifier rejects an empty username or a malformed hash.
func NewBcryptVerifier(username, passwordHash string) (*BcryptVerifier, error) {
	if username == "" || passwordHash == "" {
		return nil, fmt.Errorf("username and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &BcryptVerifier{username: username, hash: []byte(passwordHash)}, nil
}

func (v *BcryptVerifier) Verify(_ context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	// bcrypt runs even when the username is wrong.
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for the config file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
