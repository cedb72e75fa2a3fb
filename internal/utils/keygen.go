package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns n random bytes as lowercase hex.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateShareToken generates the public token of a share URL (16 hex chars).
func GenerateShareToken() (string, error) {
	return GenerateToken(8)
}
