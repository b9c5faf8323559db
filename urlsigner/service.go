// Package urlsigner creates and verifies expiring, HMAC-signed URLs.
//
// The signature covers "url|expires" or "url|expires|payload", where url
// is the URL with the signature parameter removed. Tags are HMAC-SHA-256 or
// HMAC-SHA-512 in lowercase hex. Payloads travel base64url encoded.
package urlsigner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gobeaver/hashkit/base64url"
	"github.com/gobeaver/hashkit/cache"
	"github.com/gobeaver/hashkit/hmac"
	"github.com/gobeaver/hashkit/sha2"
)

// Global instance management
var (
	defaultInstance *Signer
	defaultOnce     sync.Once
	defaultErr      error
)

// Define standard errors for the package
var (
	ErrInvalidConfig      = errors.New("urlsigner: invalid configuration")
	ErrNotInitialized     = errors.New("urlsigner: service not initialized")
	ErrInvalidURL         = errors.New("urlsigner: invalid URL")
	ErrSignatureNotFound  = errors.New("urlsigner: signature not found")
	ErrExpirationNotFound = errors.New("urlsigner: expiration not found")
	ErrInvalidExpiration  = errors.New("urlsigner: invalid expiration")
	ErrInvalidPayload     = errors.New("urlsigner: invalid payload")
	ErrExpired            = errors.New("urlsigner: URL has expired")
	ErrInvalidSignature   = errors.New("urlsigner: invalid signature")
	ErrReplayed           = errors.New("urlsigner: URL already used")
	ErrNoCache            = errors.New("urlsigner: single-use verification needs a cache")
)

const usedKeyPrefix = "urlsigner:used:"

// Signer handles URL signing operations
type Signer struct {
	secretKey     []byte
	defaultExpiry time.Duration
	algorithm     sha2.Algorithm
	queryParams   SignatureParams
	cache         cache.Cache
	logger        *zap.Logger
	now           func() time.Time
}

// SignatureParams customizes how signature parameters appear in URLs
type SignatureParams struct {
	Signature string // query parameter name for signature
	Expires   string // query parameter name for expiration
	Payload   string // query parameter name for additional payload
}

// DefaultSignatureParams returns standard query parameter names
func DefaultSignatureParams() SignatureParams {
	return SignatureParams{
		Signature: "sig",
		Expires:   "expires",
		Payload:   "payload",
	}
}

// Option configures a Signer.
type Option func(*Signer)

// WithCache sets the store used by VerifyURLOnce.
func WithCache(c cache.Cache) Option {
	return func(s *Signer) { s.cache = c }
}

// WithLogger sets the logger used for verification failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Signer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// Init initializes the global instance with optional config
func Init(configs ...Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = &configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultInstance, defaultErr = New(*cfg)
	})

	return defaultErr
}

// New creates a new instance with given config
func New(cfg Config, opts ...Option) (*Signer, error) {
	alg, err := validateConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	params := DefaultSignatureParams()
	if cfg.SignatureParam != "" {
		params.Signature = cfg.SignatureParam
	}
	if cfg.ExpiresParam != "" {
		params.Expires = cfg.ExpiresParam
	}
	if cfg.PayloadParam != "" {
		params.Payload = cfg.PayloadParam
	}

	s := &Signer{
		secretKey:     []byte(cfg.SecretKey),
		defaultExpiry: cfg.DefaultExpiry,
		algorithm:     alg,
		queryParams:   params,
		logger:        zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSigner creates a SHA-256 signer with a 30 minute default expiry.
func NewSigner(secretKey string, opts ...Option) (*Signer, error) {
	return New(Config{
		SecretKey:     secretKey,
		DefaultExpiry: 30 * time.Minute,
		Algorithm:     sha2.SHA256.String(),
	}, opts...)
}

// validateConfig checks configuration validity
func validateConfig(cfg Config) (sha2.Algorithm, error) {
	if cfg.SecretKey == "" {
		return 0, fmt.Errorf("secret key required")
	}
	if cfg.DefaultExpiry <= 0 {
		return 0, fmt.Errorf("default expiry must be positive")
	}

	algName := cfg.Algorithm
	if algName == "" {
		algName = sha2.SHA256.String()
	}
	alg, err := sha2.ParseAlgorithm(algName)
	if err != nil {
		return 0, err
	}
	return alg, nil
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultInstance = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Service returns the global signer instance, or nil when Init fails.
func Service() *Signer {
	if defaultInstance == nil {
		_ = Init()
	}
	return defaultInstance
}

// Algorithm returns the HMAC hash in use.
func (s *Signer) Algorithm() sha2.Algorithm {
	return s.algorithm
}

// SignURL signs a URL with an expiration time and optional payload. A
// non-positive expiry uses the default.
func (s *Signer) SignURL(rawURL string, expiry time.Duration, payload string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if expiry <= 0 {
		expiry = s.defaultExpiry
	}
	expiresAt := s.now().Add(expiry).Unix()

	q := parsedURL.Query()
	q.Del(s.queryParams.Signature)
	q.Set(s.queryParams.Expires, strconv.FormatInt(expiresAt, 10))
	if payload != "" {
		q.Set(s.queryParams.Payload, base64url.EncodeString(payload))
	} else {
		q.Del(s.queryParams.Payload)
	}
	parsedURL.RawQuery = q.Encode()

	signature := s.generateSignature(parsedURL.String(), expiresAt, payload)

	q.Set(s.queryParams.Signature, signature)
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}

// SignURLWithDefaultExpiry signs a URL with the default expiration time
func (s *Signer) SignURLWithDefaultExpiry(rawURL string, payload string) (string, error) {
	return s.SignURL(rawURL, s.defaultExpiry, payload)
}

// VerifyURL checks if a signed URL is valid and not expired, returning its
// payload.
func (s *Signer) VerifyURL(signedURL string) (bool, string, error) {
	v, err := s.verify(signedURL)
	if err != nil {
		s.logger.Debug("signed URL rejected", zap.Error(err))
		return false, "", err
	}
	return true, v.payload, nil
}

// VerifyURLOnce verifies signedURL and records its signature until the URL
// expires. A second verification of the same URL fails with ErrReplayed.
func (s *Signer) VerifyURLOnce(ctx context.Context, signedURL string) (string, error) {
	if s.cache == nil {
		return "", ErrNoCache
	}

	v, err := s.verify(signedURL)
	if err != nil {
		s.logger.Debug("signed URL rejected", zap.Error(err))
		return "", err
	}

	ttl := time.Unix(v.expires, 0).Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}

	stored, err := s.cache.SetNX(ctx, usedKeyPrefix+v.signature, []byte(strconv.FormatInt(v.expires, 10)), ttl)
	if err != nil {
		return "", fmt.Errorf("urlsigner: record use: %w", err)
	}
	if !stored {
		s.logger.Info("signed URL replayed", zap.Int64("expires", v.expires))
		return "", ErrReplayed
	}
	return v.payload, nil
}

type verified struct {
	signature string
	expires   int64
	payload   string
}

func (s *Signer) verify(signedURL string) (verified, error) {
	parsedURL, err := url.Parse(signedURL)
	if err != nil {
		return verified{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	q := parsedURL.Query()

	signature := q.Get(s.queryParams.Signature)
	if signature == "" {
		return verified{}, ErrSignatureNotFound
	}

	expires, err := s.expiresFrom(q)
	if err != nil {
		return verified{}, err
	}
	if s.now().Unix() > expires {
		return verified{}, ErrExpired
	}

	payload, err := s.payloadFrom(q)
	if err != nil {
		return verified{}, err
	}

	q.Del(s.queryParams.Signature)
	parsedURL.RawQuery = q.Encode()

	expected := s.generateSignature(parsedURL.String(), expires, payload)
	if !hmac.EqualHex(signature, expected) {
		return verified{}, ErrInvalidSignature
	}

	return verified{signature: signature, expires: expires, payload: payload}, nil
}

func (s *Signer) expiresFrom(q url.Values) (int64, error) {
	expiresStr := q.Get(s.queryParams.Expires)
	if expiresStr == "" {
		return 0, ErrExpirationNotFound
	}
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}
	return expires, nil
}

func (s *Signer) payloadFrom(q url.Values) (string, error) {
	encoded := q.Get(s.queryParams.Payload)
	if encoded == "" {
		return "", nil
	}
	payload, err := base64url.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}

// generateSignature signs "url|expires" plus "|payload" when present.
func (s *Signer) generateSignature(urlString string, expires int64, payload string) string {
	dataToSign := urlString + "|" + strconv.FormatInt(expires, 10)
	if payload != "" {
		dataToSign += "|" + payload
	}

	sig, _ := hmac.Hex(s.algorithm, s.secretKey, []byte(dataToSign))
	return sig
}

// GetExpirationTime returns the expiration time from a signed URL
func (s *Signer) GetExpirationTime(signedURL string) (time.Time, error) {
	parsedURL, err := url.Parse(signedURL)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	expires, err := s.expiresFrom(parsedURL.Query())
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(expires, 0), nil
}

// ExtractPayload returns the payload of a signed URL without verifying it.
func (s *Signer) ExtractPayload(signedURL string) (string, error) {
	parsedURL, err := url.Parse(signedURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return s.payloadFrom(parsedURL.Query())
}

// IsExpired checks if a signed URL has expired
func (s *Signer) IsExpired(signedURL string) (bool, error) {
	expiresAt, err := s.GetExpirationTime(signedURL)
	if err != nil {
		return true, err
	}
	return s.now().Unix() > expiresAt.Unix(), nil
}

// RemainingValidity returns the remaining validity time of a signed URL,
// zero once it has expired.
func (s *Signer) RemainingValidity(signedURL string) (time.Duration, error) {
	expiresAt, err := s.GetExpirationTime(signedURL)
	if err != nil {
		return 0, err
	}

	remaining := expiresAt.Sub(s.now())
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}
