package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ShortCodeLength is the fixed length of generated short codes. At 62^6
// combinations collisions stay rare but are still possible; uniqueness is
// ultimately enforced by the store's unique constraint.
const ShortCodeLength = 6

const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateShortCode returns a random alphanumeric code of ShortCodeLength
// characters drawn from a CSPRNG.
func GenerateShortCode() (string, error) {
	code := make([]byte, ShortCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
