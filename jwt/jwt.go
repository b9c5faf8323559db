// Package jwt assembles and checks compact JWT serializations signed with
// the hashkit HMAC.
//
// Two signature encodings are supported. The hex form signs with
// hmac.Hex256 and places the lowercase hex tag in the third segment; it is
// what CreateHS256 produces. The standard RFC 7515 form places the
// base64url-encoded raw tag there; use SignHS256 / SignHS512 as the Signer,
// or the SigningMethod values with github.com/golang-jwt/jwt/v5.
//
// Secrets are always supplied by the caller.
package jwt

import (
	"errors"
	"strings"

	"github.com/gobeaver/hashkit/base64url"
	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

// HeaderHS256 is the header CreateHS256 encodes.
const HeaderHS256 = `{"alg":"HS256","typ":"JWT"}`

// Standard errors for the jwt package
var (
	ErrNoSigner         = errors.New("jwt: signer required")
	ErrMalformed        = errors.New("jwt: token must have three segments")
	ErrSignatureInvalid = errors.New("jwt: signature verification failed")
)

// Signer produces the third token segment from a secret and the signing
// input "header.payload". Its output must not contain '.'.
type Signer func(secret, message string) string

// Create returns base64url(header) + "." + base64url(payload) + "." +
// sign(secret, base64url(header) + "." + base64url(payload)).
func Create(secret, payload, header string, sign Signer) (string, error) {
	if sign == nil {
		return "", ErrNoSigner
	}
	message := SigningInput(header, payload)
	return message + "." + sign(secret, message), nil
}

// CreateHS256 signs payload under HeaderHS256 with a hex HMAC-SHA-256
// signature segment.
func CreateHS256(secret, payload string) (string, error) {
	return Create(secret, payload, HeaderHS256, hmac.Hex256)
}

// SigningInput returns the first two segments of a token.
func SigningInput(header, payload string) string {
	return base64url.EncodeString(header) + "." + base64url.EncodeString(payload)
}

// Verify splits token, recomputes its signature with sign and compares it
// in constant time. On success it returns the decoded header and payload.
func Verify(token, secret string, sign Signer) (header, payload string, err error) {
	if sign == nil {
		return "", "", ErrNoSigner
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", "", ErrMalformed
	}

	want := sign(secret, parts[0]+"."+parts[1])
	if !hmac.EqualHex(want, parts[2]) {
		return "", "", ErrSignatureInvalid
	}

	if header, err = base64url.DecodeString(parts[0]); err != nil {
		return "", "", errors.Join(ErrMalformed, err)
	}
	if payload, err = base64url.DecodeString(parts[1]); err != nil {
		return "", "", errors.Join(ErrMalformed, err)
	}
	return header, payload, nil
}

// SignHS256 is a Signer producing the RFC 7515 HS256 signature segment.
func SignHS256(secret, message string) string {
	return signRaw(sha2.SHA256, secret, message)
}

// SignHS512 is a Signer producing the RFC 7515 HS512 signature segment.
func SignHS512(secret, message string) string {
	return signRaw(sha2.SHA512, secret, message)
}

func signRaw(alg sha2.Algorithm, secret, message string) string {
	tag, _ := hmac.Sum(alg, []byte(secret), []byte(message))
	return base64url.Encode(tag)
}
