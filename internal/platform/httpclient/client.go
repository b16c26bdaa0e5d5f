// Package httpclient provides the HTTP client used for site checks and catalog downloads,
// with proxy, per-request timeout, retry on network errors and rotating user agents.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blackbird/internal/platform/errors"
	"blackbird/internal/platform/logx"
)

// Client is an HTTP client with proxy support, retry logic and timeout support.
type Client struct {
	httpClient *http.Client
	logger     logx.Logger
	config     Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the request timeout duration.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts on network errors.
	// HTTP status codes are returned as-is and never retried.
	// Default: 0
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff is the maximum backoff duration between retries.
	// Default: 10 seconds
	MaxRetryBackoff time.Duration

	// UserAgents is the pool a random User-Agent is picked from for every request.
	// Default: DefaultUserAgents
	UserAgents []string

	// ProxyURL routes every request through an http, https or socks5 proxy.
	ProxyURL string

	// MaxBodyBytes caps how much of a response body is read.
	// Default: 5 MiB
	MaxBodyBytes int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      0,
		RetryBackoff:    1 * time.Second,
		MaxRetryBackoff: 10 * time.Second,
		UserAgents:      DefaultUserAgents,
		MaxBodyBytes:    5 << 20,
	}
}

// Request describes one HTTP call.
type Request struct {
	Method  string
	URL     string
	Body    string
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// New creates a new HTTP client with the given configuration.
// An unusable proxy URL returns errors.ErrInvalidProxy.
func New(config Config, logger logx.Logger) (*Client, error) {
	// Apply defaults for zero values
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 1 * time.Second
	}
	if config.MaxRetryBackoff <= 0 {
		config.MaxRetryBackoff = 10 * time.Second
	}
	if len(config.UserAgents) == 0 {
		config.UserAgents = DefaultUserAgents
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 5 << 20
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	if config.ProxyURL != "" {
		proxy, err := url.Parse(config.ProxyURL)
		if err != nil || proxy.Host == "" {
			return nil, errors.Wrapf(errors.ErrInvalidProxy, "proxy %q", config.ProxyURL)
		}
		switch strings.ToLower(proxy.Scheme) {
		case "http", "https", "socks5", "socks5h":
		default:
			return nil, errors.Wrapf(errors.ErrInvalidProxy, "unsupported proxy scheme %q", proxy.Scheme)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		logger: logger.With("component", "httpclient"),
		config: config,
	}, nil
}

// Do performs the request, retrying on network errors, and reads the whole body.
func (c *Client) Do(ctx context.Context, r Request) (Response, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		var body io.Reader
		if r.Body != "" {
			body = strings.NewReader(r.Body)
		}

		req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
		if err != nil {
			return Response{}, errors.Wrapf(errors.ErrInvalidInput, "failed to create request for %s %s: %v", method, r.URL, err)
		}

		req.Header.Set("User-Agent", c.UserAgent())
		for key, value := range r.Headers {
			req.Header.Set(key, value)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			lastErr = errors.Classify(err)
			c.logger.Debug("HTTP request failed",
				"method", method,
				"url", r.URL,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)

			if ctx.Err() != nil || attempt >= c.config.MaxRetries {
				break
			}
			if err := c.backoff(ctx, attempt); err != nil {
				return Response{}, errors.Wrap(err, "backoff interrupted")
			}
			continue
		}

		data, err := readBody(resp, c.config.MaxBodyBytes)
		if err != nil {
			return Response{}, err
		}

		c.logger.Debug("HTTP response received",
			"method", method,
			"url", r.URL,
			"status", resp.StatusCode,
			"bytes", len(data),
			"duration_ms", duration.Milliseconds(),
		)

		return Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
			URL:        resp.Request.URL.String(),
		}, nil
	}

	return Response{}, errors.Wrapf(lastErr, "request failed after %d attempts", c.config.MaxRetries+1)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// FetchJSON performs a GET request and returns the body of a 2xx response.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	if err := CheckStatus(resp.StatusCode); err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", url)
	}
	return resp.Body, nil
}

// UserAgent returns a random User-Agent from the configured pool.
func (c *Client) UserAgent() string {
	return c.config.UserAgents[rand.IntN(len(c.config.UserAgents))]
}

// backoff implements exponential backoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
		return nil
	}
}

func readBody(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, errors.Wrap(errors.Classify(err), "failed to read response body")
	}
	return data, nil
}

// CheckStatus maps a non-2xx status code to a platform error.
func CheckStatus(status int) error {
	if status >= 200 && status < 300 {
		return nil
	}

	switch status {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("HTTP %d: %s", status, http.StatusText(status))
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, proxy=%t}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.ProxyURL != "",
	)
}
