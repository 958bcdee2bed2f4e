package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Opaque API tokens are fixed-length alphanumeric strings. The length
// matches the token column in the users table.
const (
	TokenLength   = 256
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOpaqueToken returns a cryptographically random API token.
func NewOpaqueToken() (string, error) {
	alphabetSize := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, TokenLength)

	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
