package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default. Sign-up and
// sign-in are the only callers so the extra latency is acceptable.
const bcryptCost = 14

// HashPassword hashes the cleartext password submitted at sign-up.
// The hash is what gets persisted on the user record.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash checks a sign-in password against the stored
// hash. A mismatch maps to ErrMismatchedHashAndPassword so callers can
// treat it as a credential failure rather than an infrastructure one.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
