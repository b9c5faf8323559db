package request

import (
	"time"

	"github.com/gobeaver/hashkit/config"
)

// Config defines HTTP client configuration
type Config struct {
	Timeout   time.Duration `env:"TIMEOUT,default:10s"`
	UserAgent string        `env:"USER_AGENT,default:hashkit"`

	// Retry configuration
	MaxRetries    int           `env:"MAX_RETRIES,default:2"`
	RetryDelay    time.Duration `env:"RETRY_DELAY,default:200ms"`
	RetryMaxDelay time.Duration `env:"RETRY_MAX_DELAY,default:5s"`

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize int64 `env:"MAX_RESPONSE_SIZE,default:10485760"`
}

// DefaultConfig returns a Config with all default values applied.
// Use this when creating configs programmatically instead of from environment variables.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		UserAgent:       "hashkit",
		MaxRetries:      2,
		RetryDelay:      200 * time.Millisecond,
		RetryMaxDelay:   5 * time.Second,
		MaxResponseSize: 10 << 20,
	}
}

// GetConfig returns config loaded from environment with HASHKIT_REQUEST_ prefix
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: "HASHKIT_REQUEST_"}); err != nil {
		return nil, err
	}
	return cfg, nil
}
