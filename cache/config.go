package cache

import (
	"strings"
	"time"

	"github.com/gobeaver/hashkit/config"
)

// Config holds cache configuration
type Config struct {
	// Driver specifies cache backend: "memory" or "redis"
	Driver string `env:"DRIVER,default:memory"`

	// Redis specific settings
	Host     string `env:"HOST,default:localhost"`
	Port     string `env:"PORT,default:6379"`
	Password string `env:"PASSWORD"`
	Database int    `env:"DATABASE,default:0"`

	// Connection URL (overrides host/port/password)
	URL string `env:"URL"`

	// Connection pool settings
	MaxRetries   int           `env:"MAX_RETRIES,default:3"`
	PoolSize     int           `env:"POOL_SIZE,default:10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS,default:2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT,default:5s"`

	// Memory cache specific
	MaxSize         int64         `env:"MAX_SIZE,default:0"` // max memory in bytes
	MaxKeys         int           `env:"MAX_KEYS,default:0"` // max number of keys
	DefaultTTL      time.Duration `env:"DEFAULT_TTL,default:0s"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL,default:1m"`

	// TLS settings for Redis
	UseTLS   bool   `env:"USE_TLS,default:false"`
	CertFile string `env:"CERT_FILE"`
	KeyFile  string `env:"KEY_FILE"`

	// Common settings
	KeyPrefix string `env:"KEY_PREFIX"` // prefix for all keys
	Namespace string `env:"NAMESPACE"`  // namespace for isolation
}

// GetConfig loads configuration from environment with HASHKIT_CACHE_ prefix
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: "HASHKIT_CACHE_"}); err != nil {
		return nil, err
	}

	// Normalize driver
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))

	return cfg, nil
}
