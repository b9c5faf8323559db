package krypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/gobeaver/hashkit/base64url"
	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

// PKCE challenge methods
const (
	PKCEMethodS256  = "S256"
	PKCEMethodPlain = "plain"
)

var ErrUnsupportedPKCEMethod = errors.New("krypto: unsupported PKCE method")

// PKCEChallenge holds an RFC 7636 verifier and the challenge derived from it.
type PKCEChallenge struct {
	Verifier        string
	Challenge       string
	ChallengeMethod string
}

// GeneratePKCEChallenge generates a PKCE challenge with verifier and challenge
func GeneratePKCEChallenge(method string) (*PKCEChallenge, error) {
	verifier, err := generateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	challenge, err := PKCEChallengeFor(verifier, method)
	if err != nil {
		return nil, err
	}

	return &PKCEChallenge{
		Verifier:        verifier,
		Challenge:       challenge,
		ChallengeMethod: method,
	}, nil
}

// generateCodeVerifier returns 32 random bytes base64url encoded (43 chars).
func generateCodeVerifier() (string, error) {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		return "", err
	}
	return base64url.Encode(data), nil
}

// PKCEChallengeFor derives the challenge for verifier. S256 is
// base64url(SHA-256(verifier)); plain is the verifier itself.
func PKCEChallengeFor(verifier, method string) (string, error) {
	switch method {
	case PKCEMethodS256:
		h := sha2.Sum256([]byte(verifier))
		return base64url.Encode(h[:]), nil
	case PKCEMethodPlain:
		return verifier, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPKCEMethod, method)
	}
}

// ValidatePKCEChallenge validates that a verifier matches a challenge
func ValidatePKCEChallenge(verifier, challenge, method string) bool {
	expected, err := PKCEChallengeFor(verifier, method)
	if err != nil {
		return false
	}
	return hmac.EqualHex(expected, challenge)
}

// PKCEParams returns authorization URL parameters for PKCE
func PKCEParams(pkce *PKCEChallenge) map[string]string {
	if pkce == nil {
		return nil
	}
	return map[string]string{
		"code_challenge":        pkce.Challenge,
		"code_challenge_method": pkce.ChallengeMethod,
	}
}
