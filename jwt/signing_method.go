package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

// SigningMethodHMAC implements gojwt.SigningMethod with the hashkit HMAC.
// Keys must be non-empty []byte values.
type SigningMethodHMAC struct {
	Name string
	Hash sha2.Algorithm
}

// Signing methods producing tokens any RFC 7515 verifier accepts.
var (
	SigningMethodHS256 = &SigningMethodHMAC{Name: "HS256", Hash: sha2.SHA256}
	SigningMethodHS512 = &SigningMethodHMAC{Name: "HS512", Hash: sha2.SHA512}
)

var _ gojwt.SigningMethod = (*SigningMethodHMAC)(nil)

// Alg returns the JOSE algorithm name.
func (m *SigningMethodHMAC) Alg() string {
	return m.Name
}

// Sign returns the raw tag over signingString.
func (m *SigningMethodHMAC) Sign(signingString string, key interface{}) ([]byte, error) {
	keyBytes, err := hmacKey(key)
	if err != nil {
		return nil, err
	}
	tag, err := hmac.Sum(m.Hash, keyBytes, []byte(signingString))
	if err != nil {
		return nil, gojwt.ErrHashUnavailable
	}
	return tag, nil
}

// Verify checks sig against the tag over signingString in constant time.
func (m *SigningMethodHMAC) Verify(signingString string, sig []byte, key interface{}) error {
	keyBytes, err := hmacKey(key)
	if err != nil {
		return err
	}
	if !hmac.Verify(m.Hash, keyBytes, []byte(signingString), sig) {
		return gojwt.ErrSignatureInvalid
	}
	return nil
}

func hmacKey(key interface{}) ([]byte, error) {
	keyBytes, ok := key.([]byte)
	if !ok {
		return nil, gojwt.ErrInvalidKeyType
	}
	if len(keyBytes) == 0 {
		return nil, gojwt.ErrInvalidKey
	}
	return keyBytes, nil
}
