// Package hmac implements the keyed-hash message authentication code of
// FIPS 198-1 / RFC 2104 on top of the sha2 engine.
//
//	key is hashed if longer than the block size, then zero padded to it
//	ipad = key ^ 0x36 repeated
//	opad = key ^ 0x5c repeated
//	hmac = H(opad || H(ipad || message))
//
// Compare tags with Equal or EqualHex, never with ==.
package hmac

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"hash"

	"github.com/gobeaver/hashkit/hexenc"
	"github.com/gobeaver/hashkit/sha2"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// ErrUnknownAlgorithm is returned for an invalid sha2.Algorithm.
var ErrUnknownAlgorithm = errors.New("hmac: unknown algorithm")

var _ hash.Hash = (*MAC)(nil)

// MAC is a streaming HMAC. It is not safe for concurrent use.
type MAC struct {
	alg          sha2.Algorithm
	inner, outer sha2.Hash
	ipad, opad   []byte
}

// New returns a MAC keyed with key. The key is normalised once; the caller
// may reuse its slice afterwards.
func New(alg sha2.Algorithm, key []byte) (*MAC, error) {
	inner, err := sha2.New(alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownAlgorithm, err)
	}
	outer, _ := sha2.New(alg)

	k := NormalizeKey(alg, key)
	m := &MAC{
		alg:   alg,
		inner: inner,
		outer: outer,
		ipad:  make([]byte, len(k)),
		opad:  make([]byte, len(k)),
	}
	for i, b := range k {
		m.ipad[i] = b ^ ipad
		m.opad[i] = b ^ opad
	}
	clear(k)

	m.Reset()
	return m, nil
}

// NormalizeKey returns key as exactly one block: hashed first when it is
// longer than the block size, then zero-extended. It returns nil for an
// invalid algorithm.
func NormalizeKey(alg sha2.Algorithm, key []byte) []byte {
	bs := alg.BlockSize()
	if bs == 0 {
		return nil
	}
	if len(key) > bs {
		d, _ := sha2.Sum(alg, key)
		key = d
	}
	k := make([]byte, bs)
	copy(k, key)
	return k
}

// Algorithm reports the underlying hash variant.
func (m *MAC) Algorithm() sha2.Algorithm { return m.alg }

// Size returns the tag length in bytes.
func (m *MAC) Size() int { return m.alg.Size() }

// BlockSize returns the block length of the underlying hash.
func (m *MAC) BlockSize() int { return m.alg.BlockSize() }

// Reset restarts the inner computation with the same key.
func (m *MAC) Reset() {
	m.inner.Init()
	_ = m.inner.Update(m.ipad)
}

// Write absorbs message bytes.
func (m *MAC) Write(p []byte) (int, error) {
	return m.inner.Write(p)
}

// Sum appends the tag of the message so far to b without disturbing the
// inner state.
func (m *MAC) Sum(b []byte) []byte {
	innerDigest := m.inner.Sum(nil)

	m.outer.Init()
	_ = m.outer.Update(m.opad)
	_ = m.outer.Update(innerDigest)
	tag, _ := m.outer.Finalize()
	return append(b, tag...)
}

// Sum computes the tag of message under key in one call.
func Sum(alg sha2.Algorithm, key, message []byte) (sha2.Digest, error) {
	m, err := New(alg, key)
	if err != nil {
		return nil, err
	}

	_ = m.inner.Update(message)
	innerDigest, _ := m.inner.Finalize()

	_ = m.outer.Update(m.opad)
	_ = m.outer.Update(innerDigest)
	return m.outer.Finalize()
}

// Hex computes the tag of message under key rendered as lowercase hex.
func Hex(alg sha2.Algorithm, key, message []byte) (string, error) {
	tag, err := Sum(alg, key, message)
	if err != nil {
		return "", err
	}
	return hexenc.Encode(tag), nil
}

// Hex256 returns the 64-character HMAC-SHA-256 tag of message under key.
func Hex256(key, message string) string {
	s, _ := Hex(sha2.SHA256, []byte(key), []byte(message))
	return s
}

// Hex512 returns the 128-character HMAC-SHA-512 tag of message under key.
func Hex512(key, message string) string {
	s, _ := Hex(sha2.SHA512, []byte(key), []byte(message))
	return s
}

// Equal compares two tags in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// EqualHex compares two hex tags in constant time. Case is significant:
// tags produced by this package are lowercase.
func EqualHex(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Verify reports whether tag is the HMAC of message under key.
func Verify(alg sha2.Algorithm, key, message, tag []byte) bool {
	want, err := Sum(alg, key, message)
	if err != nil {
		return false
	}
	return Equal(want, tag)
}
