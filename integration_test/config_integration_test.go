package integration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/gobeaver/hashkit/cache"
	"github.com/gobeaver/hashkit/config"
	"github.com/gobeaver/hashkit/logging"
	"github.com/gobeaver/hashkit/request"
	"github.com/gobeaver/hashkit/sha2"
	"github.com/gobeaver/hashkit/urlsigner"
)

// TestDefaultPrefixes checks that every package reads its own HASHKIT_ variables
func TestDefaultPrefixes(t *testing.T) {
	t.Setenv("HASHKIT_CACHE_DRIVER", " Memory ")
	t.Setenv("HASHKIT_URLSIGNER_SECRET_KEY", "integration-secret")
	t.Setenv("HASHKIT_URLSIGNER_ALGORITHM", "sha512")
	t.Setenv("HASHKIT_REQUEST_TIMEOUT", "3s")
	t.Setenv("HASHKIT_LOG_LEVEL", "debug")

	cacheCfg, err := cache.GetConfig()
	if err != nil {
		t.Fatalf("Failed to load cache config: %v", err)
	}
	if cacheCfg.Driver != "memory" {
		t.Errorf("Expected cache driver 'memory', got '%s'", cacheCfg.Driver)
	}

	signerCfg, err := urlsigner.GetConfig()
	if err != nil {
		t.Fatalf("Failed to load urlsigner config: %v", err)
	}
	signer, err := urlsigner.New(*signerCfg)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	if signer.Algorithm() != sha2.SHA512 {
		t.Errorf("Expected sha512 signer, got %s", signer.Algorithm())
	}

	reqCfg, err := request.GetConfig()
	if err != nil {
		t.Fatalf("Failed to load request config: %v", err)
	}
	if reqCfg.Timeout != 3*time.Second {
		t.Errorf("Expected timeout 3s, got %v", reqCfg.Timeout)
	}
	if reqCfg.UserAgent != "hashkit" {
		t.Errorf("Expected default user agent, got '%s'", reqCfg.UserAgent)
	}

	logCfg, err := logging.GetConfig()
	if err != nil {
		t.Fatalf("Failed to load logging config: %v", err)
	}
	if logCfg.Level != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", logCfg.Level)
	}
}

// TestMissingSecret checks that the signer config refuses an empty key
func TestMissingSecret(t *testing.T) {
	t.Setenv("HASHKIT_URLSIGNER_SECRET_KEY", "")

	_, err := urlsigner.GetConfig()
	if !errors.Is(err, config.ErrRequired) {
		t.Fatalf("Expected ErrRequired, got %v", err)
	}
}

// TestCustomPrefix tests the WithPrefix builder
func TestCustomPrefix(t *testing.T) {
	t.Setenv("STAGING_DRIVER", "memory")
	t.Setenv("STAGING_KEY_PREFIX", "staging")

	c, err := cache.WithPrefix("STAGING_").New()
	if err != nil {
		t.Fatalf("Failed to create staging cache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Expected 'v', got '%s' (%v)", got, err)
	}
}

// TestSingleUseAcrossInstances checks that two signers sharing one redis
// reject a URL the other has already accepted
func TestSingleUseAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("HASHKIT_CACHE_DRIVER", "redis")
	t.Setenv("HASHKIT_CACHE_URL", "redis://"+mr.Addr())

	newSigner := func() *urlsigner.Signer {
		c, err := cache.NewFromEnv()
		if err != nil {
			t.Fatalf("Failed to connect cache: %v", err)
		}
		t.Cleanup(func() { _ = c.Close() })

		s, err := urlsigner.NewSigner("shared-secret", urlsigner.WithCache(c))
		if err != nil {
			t.Fatalf("Failed to create signer: %v", err)
		}
		return s
	}
	first, second := newSigner(), newSigner()

	signed, err := first.SignURL("https://example.com/download?id=1", time.Minute, "user-1")
	if err != nil {
		t.Fatalf("SignURL failed: %v", err)
	}

	ctx := context.Background()
	payload, err := first.VerifyURLOnce(ctx, signed)
	if err != nil {
		t.Fatalf("First use rejected: %v", err)
	}
	if payload != "user-1" {
		t.Errorf("Expected payload 'user-1', got '%s'", payload)
	}

	if _, err := second.VerifyURLOnce(ctx, signed); !errors.Is(err, urlsigner.ErrReplayed) {
		t.Errorf("Expected ErrReplayed from second instance, got %v", err)
	}

	if keys := mr.Keys(); len(keys) != 1 {
		t.Errorf("Expected one recorded signature, got %v", keys)
	}
}
