package cache

import (
	"github.com/gobeaver/hashkit/cache/driver/memory"
	"github.com/gobeaver/hashkit/cache/driver/redis"
)

func memoryRegister(cfg Config) (Cache, error) {
	return memory.New(memory.Config{
		MaxSize:         cfg.MaxSize,
		MaxKeys:         cfg.MaxKeys,
		DefaultTTL:      cfg.DefaultTTL,
		CleanupInterval: cfg.CleanupInterval,
		KeyPrefix:       cfg.KeyPrefix,
		Namespace:       cfg.Namespace,
	}), nil
}

func redisRegister(cfg Config) (Cache, error) {
	c, err := redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: cfg.Database,
		URL:      cfg.URL,

		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,

		UseTLS:   cfg.UseTLS,
		CertFile: cfg.CertFile,
		KeyFile:  cfg.KeyFile,

		KeyPrefix: cfg.KeyPrefix,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
