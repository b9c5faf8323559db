package krypto

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gobeaver/hashkit/jwt"
)

var ErrMissingSecret = errors.New("krypto: signing secret is empty")

type UserClaims struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Token string `json:"token"`
	gojwt.RegisteredClaims
}

var hs256Parser = gojwt.NewParser(gojwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

// NewHs256AccessToken signs claims with HMAC-SHA-256. A missing ID is
// filled with a random UUID and a missing IssuedAt with the current time.
func NewHs256AccessToken(secret []byte, claims UserClaims) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	fillRegistered(&claims.RegisteredClaims)
	return gojwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// NewHs256RefreshToken signs registered claims with HMAC-SHA-256.
func NewHs256RefreshToken(secret []byte, claims gojwt.RegisteredClaims) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	fillRegistered(&claims)
	return gojwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func fillRegistered(c *gojwt.RegisteredClaims) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.IssuedAt == nil {
		c.IssuedAt = gojwt.NewNumericDate(time.Now())
	}
}

// ParseHs256AccessToken verifies an access token and returns its claims.
// Only HS256 tokens are accepted.
func ParseHs256AccessToken(secret []byte, accessToken string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := parseHs256(secret, accessToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseHs256RefreshToken verifies a refresh token and returns its claims.
func ParseHs256RefreshToken(secret []byte, refreshToken string) (*gojwt.RegisteredClaims, error) {
	claims := &gojwt.RegisteredClaims{}
	if err := parseHs256(secret, refreshToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseHs256(secret []byte, token string, claims gojwt.Claims) error {
	if len(secret) == 0 {
		return ErrMissingSecret
	}

	parsed, err := hs256Parser.ParseWithClaims(token, claims, func(*gojwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("krypto: parse token: %w", err)
	}
	if !parsed.Valid {
		return fmt.Errorf("krypto: parse token: %w", gojwt.ErrTokenInvalidClaims)
	}
	return nil
}
