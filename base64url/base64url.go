// Package base64url encodes and decodes the URL-safe Base64 alphabet of
// RFC 4648 section 5 without padding, as used by JWT segments.
package base64url

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEncoding is returned for characters outside the alphabet or an
// impossible trailing group.
var ErrInvalidEncoding = errors.New("base64url: invalid encoding")

// Encode returns the unpadded encoding of data.
func Encode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// EncodeString is Encode for text input.
func EncodeString(s string) string {
	return Encode([]byte(s))
}

// Decode reverses Encode. Trailing '=' padding is tolerated; any other byte
// outside the alphabet, including line breaks, and non-zero trailing bits
// are rejected.
func Decode(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	for i := 0; i < len(s); i++ {
		if !inAlphabet(s[i]) {
			return nil, fmt.Errorf("%w: illegal byte %q at offset %d", ErrInvalidEncoding, s[i], i)
		}
	}
	out, err := base64.RawURLEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return out, nil
}

func inAlphabet(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '-' || c == '_'
}

// DecodeString is Decode returning text.
func DecodeString(s string) (string, error) {
	b, err := Decode(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
