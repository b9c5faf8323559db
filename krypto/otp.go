package krypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

var (
	ErrInvalidDigits = errors.New("krypto: OTP digits must be between 6 and 9")
	ErrInvalidPeriod = errors.New("krypto: TOTP period must be at least one second")
	ErrInvalidTime   = errors.New("krypto: TOTP time precedes the epoch")
)

var pow10 = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000}

// GenerateOTP generates a random One-Time Password (OTP) of the specified length.
// It uses a cryptographically secure random number generator to ensure the randomness
// of the generated OTP.
func GenerateOTP(length int) (string, error) {
	const charset = "0123456789"
	charsetLen := big.NewInt(int64(len(charset)))

	otp := make([]byte, length)
	for i := range otp {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", fmt.Errorf("krypto: generate OTP: %w", err)
		}
		otp[i] = charset[n.Int64()]
	}
	return string(otp), nil
}

// GenerateHOTP computes the RFC 4226 code for counter using HMAC over alg.
func GenerateHOTP(secret []byte, counter uint64, digits int, alg sha2.Algorithm) (string, error) {
	if digits < 6 || digits > 9 {
		return "", ErrInvalidDigits
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)
	tag, err := hmac.Sum(alg, secret, msg[:])
	if err != nil {
		return "", err
	}

	// Dynamic truncation
	offset := tag[len(tag)-1] & 0x0f
	code := binary.BigEndian.Uint32(tag[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%0*d", digits, code%pow10[digits]), nil
}

// TOTPOptions tunes GenerateTOTP and ValidateTOTP. Zero fields take the
// defaults of a 30 second period, 6 digits and SHA-256. A zero Skew accepts
// the current step only.
type TOTPOptions struct {
	Period    time.Duration
	Digits    int
	Algorithm sha2.Algorithm
	Skew      uint
}

func (o TOTPOptions) withDefaults() TOTPOptions {
	if o.Period == 0 {
		o.Period = 30 * time.Second
	}
	if o.Digits == 0 {
		o.Digits = 6
	}
	if o.Algorithm == 0 {
		o.Algorithm = sha2.SHA256
	}
	return o
}

func (o TOTPOptions) counter(t time.Time) (uint64, error) {
	if o.Period < time.Second {
		return 0, ErrInvalidPeriod
	}
	if t.Unix() < 0 {
		return 0, ErrInvalidTime
	}
	return uint64(t.Unix()) / uint64(o.Period/time.Second), nil
}

// GenerateTOTP computes the RFC 6238 code for t.
func GenerateTOTP(secret []byte, t time.Time, opts TOTPOptions) (string, error) {
	opts = opts.withDefaults()
	counter, err := opts.counter(t)
	if err != nil {
		return "", err
	}
	return GenerateHOTP(secret, counter, opts.Digits, opts.Algorithm)
}

// ValidateTOTP reports whether code matches t or any step within
// opts.Skew periods of it. Comparison is constant time.
func ValidateTOTP(secret []byte, code string, t time.Time, opts TOTPOptions) bool {
	opts = opts.withDefaults()
	counter, err := opts.counter(t)
	if err != nil || len(code) != opts.Digits {
		return false
	}

	match := false
	for delta := -int64(opts.Skew); delta <= int64(opts.Skew); delta++ {
		c := int64(counter) + delta
		if c < 0 {
			continue
		}
		want, err := GenerateHOTP(secret, uint64(c), opts.Digits, opts.Algorithm)
		if err != nil {
			return false
		}
		if hmac.EqualHex(want, code) {
			match = true
		}
	}
	return match
}
