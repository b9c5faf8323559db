// Package hexenc renders byte sequences as lowercase hexadecimal text.
//
// The output alphabet is [0-9a-f] only, so encoded digests can be placed in
// URLs, query strings and compact JWT segments without further escaping.
package hexenc

import (
	"errors"
	"fmt"
)

const digits = "0123456789abcdef"

// ErrInvalidHex is returned by Decode for odd-length or non-hex input.
var ErrInvalidHex = errors.New("hexenc: invalid hex string")

// EncodedLen returns the length of the encoding of n bytes.
func EncodedLen(n int) int { return n * 2 }

// Encode returns 2*len(b) lowercase hex characters, high nibble first.
func Encode(b []byte) string {
	return string(AppendEncode(make([]byte, 0, EncodedLen(len(b))), b))
}

// AppendEncode appends the encoding of b to dst.
func AppendEncode(dst, b []byte) []byte {
	for _, v := range b {
		dst = append(dst, digits[v>>4], digits[v&0x0f])
	}
	return dst
}

// Decode parses s, accepting either case.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrInvalidHex, len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok := fromHexChar(s[2*i])
		if !ok {
			return nil, fmt.Errorf("%w: byte %q at %d", ErrInvalidHex, s[2*i], 2*i)
		}
		lo, ok := fromHexChar(s[2*i+1])
		if !ok {
			return nil, fmt.Errorf("%w: byte %q at %d", ErrInvalidHex, s[2*i+1], 2*i+1)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
