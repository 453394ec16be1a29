package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureRandomString returns a URL-safe random string of n bytes of
// entropy, used for refresh token values.
func GenerateSecureRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
