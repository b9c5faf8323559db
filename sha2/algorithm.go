package sha2

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gobeaver/hashkit/hexenc"
)

// Algorithm selects a SHA-2 variant. There is no default: the zero value is
// invalid and rejected by New.
type Algorithm int

const (
	// SHA256 is the 32-bit word variant with a 32-byte digest.
	SHA256 Algorithm = iota + 1
	// SHA512 is the 64-bit word variant with a 64-byte digest.
	SHA512
)

// ParseAlgorithm accepts "sha256"/"sha-256"/"256" and the 512 equivalents,
// case-insensitively.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha256", "sha-256", "256":
		return SHA256, nil
	case "sha512", "sha-512", "512":
		return SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Valid reports whether a names a supported variant.
func (a Algorithm) Valid() bool {
	return a == SHA256 || a == SHA512
}

// Size returns the digest length of a, or 0 if a is invalid.
func (a Algorithm) Size() int {
	switch a {
	case SHA256:
		return Size256
	case SHA512:
		return Size512
	default:
		return 0
	}
}

// BlockSize returns the block length of a, or 0 if a is invalid.
func (a Algorithm) BlockSize() int {
	switch a {
	case SHA256:
		return BlockSize256
	case SHA512:
		return BlockSize512
	default:
		return 0
	}
}

// New returns a fresh engine for a.
func New(a Algorithm) (Hash, error) {
	switch a {
	case SHA256:
		return New256(), nil
	case SHA512:
		return New512(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, a)
	}
}

// Digest is the output of one finalized computation.
type Digest []byte

// Hex renders d as lowercase hexadecimal.
func (d Digest) Hex() string {
	return hexenc.Encode(d)
}

func (d Digest) String() string {
	return d.Hex()
}

// Equal compares two digests in constant time.
func (d Digest) Equal(other Digest) bool {
	return subtle.ConstantTimeCompare(d, other) == 1
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size256]byte {
	var out [Size256]byte
	copy(out[:], oneShot(New256(), data))
	return out
}

// Sum512 returns the SHA-512 digest of data.
func Sum512(data []byte) [Size512]byte {
	var out [Size512]byte
	copy(out[:], oneShot(New512(), data))
	return out
}

// Sum is the one-shot form of Init, Update and Finalize.
func Sum(a Algorithm, data []byte) (Digest, error) {
	h, err := New(a)
	if err != nil {
		return nil, err
	}
	return oneShot(h, data), nil
}

// oneShot runs a fresh engine to completion; neither call can fail.
func oneShot(h Hash, data []byte) Digest {
	_ = h.Update(data)
	d, _ := h.Finalize()
	return d
}
