// Package memory is an in-process cache driver.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/hashkit/cache/driver"
)

// item represents a cached item with expiration
type item struct {
	value      []byte
	expiration int64
}

func (it *item) expired(now int64) bool {
	return it.expiration > 0 && now > it.expiration
}

// MemoryCache implements an in-memory cache
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]*item
	maxSize     int64
	currentSize int64
	maxKeys     int
	defaultTTL  time.Duration
	keyPrefix   string
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// Config holds memory cache specific configuration
type Config struct {
	MaxSize         int64
	MaxKeys         int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	KeyPrefix       string
	Namespace       string
}

// New creates a memory cache and starts its expiry sweeper.
func New(cfg Config) *MemoryCache {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	mc := &MemoryCache{
		items:       make(map[string]*item),
		maxSize:     cfg.MaxSize,
		maxKeys:     cfg.MaxKeys,
		defaultTTL:  cfg.DefaultTTL,
		keyPrefix:   driver.JoinPrefix(cfg.Namespace, cfg.KeyPrefix),
		stopCleanup: make(chan struct{}),
	}

	go mc.cleanupExpired(cfg.CleanupInterval)

	return mc
}

// Get retrieves a value by key
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	it, ok := mc.items[mc.keyPrefix+key]
	if !ok || it.expired(time.Now().UnixNano()) {
		return nil, driver.ErrKeyNotFound
	}
	return append([]byte(nil), it.value...), nil
}

// Set stores a value with optional TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return mc.set(mc.keyPrefix+key, value, ttl)
}

// SetNX stores value only if key is absent or expired.
func (mc *MemoryCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	fullKey := mc.keyPrefix + key
	if it, ok := mc.items[fullKey]; ok && !it.expired(time.Now().UnixNano()) {
		return false, nil
	}
	if err := mc.set(fullKey, value, ttl); err != nil {
		return false, err
	}
	return true, nil
}

// set requires mc.mu held for writing.
func (mc *MemoryCache) set(fullKey string, value []byte, ttl time.Duration) error {
	size := int64(len(value))
	old, exists := mc.items[fullKey]

	if mc.maxKeys > 0 && !exists && len(mc.items) >= mc.maxKeys {
		return fmt.Errorf("%w: %d keys", driver.ErrLimitReached, mc.maxKeys)
	}

	newSize := mc.currentSize + size
	if exists {
		newSize -= int64(len(old.value))
	}
	if mc.maxSize > 0 && newSize > mc.maxSize {
		return fmt.Errorf("%w: %d bytes", driver.ErrLimitReached, mc.maxSize)
	}

	if ttl == 0 {
		ttl = mc.defaultTTL
	}
	var expiration int64
	if ttl > 0 {
		expiration = time.Now().Add(ttl).UnixNano()
	}

	mc.items[fullKey] = &item{
		value:      append([]byte(nil), value...),
		expiration: expiration,
	}
	mc.currentSize = newSize
	return nil
}

// Delete removes a key
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.remove(mc.keyPrefix + key)
	return nil
}

func (mc *MemoryCache) remove(fullKey string) {
	if it, ok := mc.items[fullKey]; ok {
		mc.currentSize -= int64(len(it.value))
		delete(mc.items, fullKey)
	}
}

// Exists checks if a key exists
func (mc *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	it, ok := mc.items[mc.keyPrefix+key]
	return ok && !it.expired(time.Now().UnixNano()), nil
}

// Clear removes all keys under this cache's prefix.
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for key := range mc.items {
		if strings.HasPrefix(key, mc.keyPrefix) {
			mc.remove(key)
		}
	}
	return nil
}

// Close stops the expiry sweeper. It is safe to call more than once.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() { close(mc.stopCleanup) })
	return nil
}

// Ping checks if cache is operational
func (mc *MemoryCache) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored keys, expired ones included until the
// next sweep.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

func (mc *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCleanup:
			return
		}
	}
}

func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := time.Now().UnixNano()
	for key, it := range mc.items {
		if it.expired(now) {
			mc.remove(key)
		}
	}
}
