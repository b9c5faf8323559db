// Package cache provides a small key/value store with memory and redis
// drivers. hashkit uses it to remember single-use URL signatures until they
// expire.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gobeaver/hashkit/cache/driver"
	"github.com/gobeaver/hashkit/config"
)

// Global instances
var (
	defaultCache Cache
	defaultOnce  sync.Once
	defaultErr   error
)

// Common errors
var (
	ErrNotInitialized = errors.New("cache: not initialized")
	ErrInvalidDriver  = errors.New("cache: invalid driver")
	ErrKeyNotFound    = driver.ErrKeyNotFound
	ErrLimitReached   = driver.ErrLimitReached
)

// Builder provides a way to create cache instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global cache instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(*cfg)
}

// New creates a new cache instance using the builder's prefix
func (b *Builder) New() (Cache, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(*cfg)
}

// Init initializes the global cache instance with optional config
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

		defaultCache, defaultErr = New(*cfg)
	})

	return defaultErr
}

// New creates a new cache instance with given config
func New(cfg Config) (Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		return memoryRegister(cfg)
	case "redis":
		return redisRegister(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriver, cfg.Driver)
	}
}

// NewFromEnv creates cache instance from environment variables
func NewFromEnv() (Cache, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(*cfg)
}

// Default returns the global cache instance
func Default() Cache {
	if defaultCache == nil {
		_ = Init()
	}
	return defaultCache
}

// Ping checks if the global cache is reachable
func Ping(ctx context.Context) error {
	if defaultCache == nil {
		return ErrNotInitialized
	}
	return defaultCache.Ping(ctx)
}

// Reset clears the global instance (for testing)
func Reset() {
	if defaultCache != nil {
		_ = defaultCache.Close()
	}
	defaultCache = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
