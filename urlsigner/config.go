package urlsigner

import (
	"time"

	"github.com/gobeaver/hashkit/config"
)

// Config defines the configuration for URL signer
type Config struct {
	// SecretKey is the HMAC secret key for signing URLs
	SecretKey string `env:"SECRET_KEY,required"`

	// DefaultExpiry is the default expiration duration for signed URLs
	DefaultExpiry time.Duration `env:"DEFAULT_EXPIRY,default:30m"`

	// Algorithm is the HMAC hash: sha256 or sha512
	Algorithm string `env:"ALGORITHM,default:sha256"`

	// SignatureParam is the query parameter name for signature
	SignatureParam string `env:"SIGNATURE_PARAM,default:sig"`

	// ExpiresParam is the query parameter name for expiration
	ExpiresParam string `env:"EXPIRES_PARAM,default:expires"`

	// PayloadParam is the query parameter name for payload
	PayloadParam string `env:"PAYLOAD_PARAM,default:payload"`
}

// GetConfig returns config loaded from environment with HASHKIT_URLSIGNER_ prefix
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: "HASHKIT_URLSIGNER_"}); err != nil {
		return nil, err
	}
	return cfg, nil
}
