package helpers

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword compares a bcrypt hash with a plain password.
func VerifyPassword(hashed, provided string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(provided)) == nil
}

// SecureCompare compares two secrets in constant time. Used for the admin
// credentials, which come from the environment and are not hashed.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
