package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Global instance management
var (
	defaultClient *Client
	defaultOnce   sync.Once
	defaultErr    error
)

// Client performs Data requests over HTTP.
type Client struct {
	httpClient      *http.Client
	userAgent       string
	maxRetries      int
	retryDelay      time.Duration
	retryMaxDelay   time.Duration
	maxResponseSize int64
	logger          *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
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

		defaultClient, defaultErr = NewClient(*cfg)
	})
	return defaultErr
}

// Default returns the global client, or nil before Init succeeds.
func Default() *Client {
	return defaultClient
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultClient = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Send performs d with the global client.
func Send(ctx context.Context, d Data, post bool) (string, error) {
	if defaultClient == nil {
		return "", ErrNotInitialized
	}
	return defaultClient.Send(ctx, d, post)
}

// NewClient creates a client with the given config
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	c := &Client{
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		userAgent:       cfg.UserAgent,
		maxRetries:      cfg.MaxRetries,
		retryDelay:      cfg.RetryDelay,
		retryMaxDelay:   cfg.RetryMaxDelay,
		maxResponseSize: cfg.MaxResponseSize,
		logger:          zap.NewNop(),
	}
	if c.retryMaxDelay < c.retryDelay {
		c.retryMaxDelay = c.retryDelay
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func validateConfig(cfg Config) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative", ErrInvalidConfig)
	}
	if cfg.MaxRetries > 0 && cfg.RetryDelay <= 0 {
		return fmt.Errorf("%w: retry delay must be positive", ErrInvalidConfig)
	}
	if cfg.MaxResponseSize <= 0 {
		return fmt.Errorf("%w: max response size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Send performs d and returns the response body for any status code, the
// way `curl -s -o -` does. A body forces POST with form encoding. Without
// post, redirects are followed as with --location; with post they are not.
//
// Transport failures and 429, 502, 503 and 504 responses are retried with
// exponential backoff.
func (c *Client) Send(ctx context.Context, d Data, post bool) (string, error) {
	header, err := parseHeaders(d.Headers)
	if err != nil {
		return "", err
	}

	var lastErr error
	var lastBody string
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return lastBody, ctx.Err()
			case <-time.After(delay):
				delay = min(delay*2, c.retryMaxDelay)
			}
			c.logger.Debug("retrying request",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", c.maxRetries),
				zap.Error(lastErr))
		}

		body, err := c.do(ctx, d, header, post)
		if err == nil {
			return body, nil
		}
		lastErr, lastBody = err, body

		if !isRetryable(err) || ctx.Err() != nil {
			return body, err
		}
	}

	return lastBody, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

func (c *Client) do(ctx context.Context, d Data, header http.Header, post bool) (string, error) {
	method := http.MethodGet
	var payload io.Reader
	if post || d.hasBody() {
		method = http.MethodPost
	}
	if d.hasBody() {
		payload = strings.NewReader(Body(d))
	}

	target := normalizeURL(d.url())
	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return "", fmt.Errorf("request: create request: %w", err)
	}
	req.Header = header.Clone()
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	hc := c.httpClient
	if post {
		noFollow := *hc
		noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		hc = &noFollow
	}

	c.logger.Debug("sending request", zap.String("method", method), zap.String("url", target))

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize+1))
	if err != nil {
		return "", fmt.Errorf("request: read response: %w", err)
	}
	if int64(len(body)) > c.maxResponseSize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxResponseSize)
	}

	c.logger.Debug("response received", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return string(body), fmt.Errorf("%w: status=%d", ErrRetryableStatus, resp.StatusCode)
	}
	return string(body), nil
}

func parseHeaders(lines []string) (http.Header, error) {
	header := make(http.Header, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}
		header.Add(name, strings.TrimSpace(value))
	}
	return header, nil
}

func isRetryable(err error) bool {
	return errors.Is(err, ErrRequestFailed) || errors.Is(err, ErrRetryableStatus)
}
