package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives 256 bits of entropy; the hex form is 64 characters.
const tokenBytes = 32

// GenerateToken produces a cryptographically secure session token.
// Uniqueness is enforced by the store's unique constraint, not here.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
