package krypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/gobeaver/hashkit/hexenc"
)

// GenerateSecureToken returns length random bytes from crypto/rand,
// hex encoded.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("krypto: generate token: %w", err)
	}
	return hexenc.Encode(b), nil
}

// GenerateRandomString returns length characters drawn uniformly from
// [a-zA-Z0-9] with crypto/rand.
func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	charsetLen := big.NewInt(int64(len(charset)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("krypto: generate string: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}

// GenerateToken64 returns 64 hex characters built from two random UUIDs.
func GenerateToken64() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
