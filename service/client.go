package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"moviehub-cli/cache"
	"moviehub-cli/config"
	"moviehub-cli/model"
	"moviehub-cli/telemetry"
)

const (
	defaultBaseURL     = "http://localhost:5000"
	defaultUserAgent   = "moviehub-cli"
	defaultTimeout     = 12 * time.Second
	defaultMaxAttempts = 3
	defaultRetryBase   = 200 * time.Millisecond
	defaultRetryCap    = 1200 * time.Millisecond
	maxBodyBytes       = 1 << 20
)

// Client wraps HTTP access to the MovieHub site.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	retryBase   time.Duration
	retryCap    time.Duration
	cache       cache.Store
	logger      *slog.Logger
}

// APIError is returned when a GET responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "moviehub api error"
	}
	return fmt.Sprintf("moviehub api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// NewClient creates a new API client. If httpClient is nil, a default client is used.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     defaultBaseURL,
		userAgent:   defaultUserAgent,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		retryCap:    defaultRetryCap,
		cache:       cache.NewMemoryStore(),
		logger:      telemetry.Discard(),
	}
}

// NewClientFromConfig builds a client for cfg. A nil store gets a memory cache.
func NewClientFromConfig(cfg config.APIConfig, store cache.Store, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := NewClient(&http.Client{Timeout: timeout})
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		c.baseURL = base
	}
	if store != nil {
		c.cache = store
	}
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves a site path such as /booking_success/7 against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// CachedGetJSON serves endpoint from the response cache when a fresh entry
// exists and otherwise fetches it. Only 2xx bodies that decode are stored. A
// failing cache backend is logged and bypassed.
func (c *Client) CachedGetJSON(ctx context.Context, endpoint string, options any, out any) error {
	key := cache.Key(endpoint, options)
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache read failed", "endpoint", endpoint, "error", err)
		ok = false
	}
	if ok {
		if err := decodeBody(endpoint, body, out); err == nil {
			c.logger.DebugContext(ctx, "cache hit", "endpoint", endpoint)
			return nil
		}
		c.logger.WarnContext(ctx, "cached body unreadable, refetching", "endpoint", endpoint)
	}

	body, err = c.getBody(ctx, endpoint)
	if err != nil {
		c.logger.ErrorContext(ctx, "fetch failed", "endpoint", endpoint, "error", err)
		return err
	}
	if err := decodeBody(endpoint, body, out); err != nil {
		c.logger.ErrorContext(ctx, "decode failed", "endpoint", endpoint, "error", err)
		return err
	}
	if err := c.cache.Set(ctx, key, body); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "endpoint", endpoint, "error", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.getBody(ctx, endpoint)
	if err != nil {
		return err
	}
	return decodeBody(endpoint, body, out)
}

func decodeBody(endpoint string, body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "decode response from %s", endpoint)
	}
	return nil
}

func (c *Client) getBody(ctx context.Context, endpoint string) ([]byte, error) {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, errors.Wrap(err, "create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			if c.shouldRetryNetworkError(err) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			return nil, &model.TransportError{Endpoint: endpoint, Err: err}
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
			_ = res.Body.Close()

			apiErr := &APIError{
				StatusCode: res.StatusCode,
				Status:     res.Status,
				Endpoint:   endpoint,
				Body:       strings.TrimSpace(string(snippet)),
			}
			if c.shouldRetryStatus(res.StatusCode) && attempt < maxAttempts {
				if waitErr := c.waitRetry(ctx, attempt); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			return nil, apiErr
		}

		body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
		_ = res.Body.Close()
		if err != nil {
			return nil, &model.TransportError{Endpoint: endpoint, Err: err}
		}
		return body, nil
	}

	return nil, errors.New("request failed after retries")
}

// postJSON sends exactly one request. A nil error means a response arrived,
// whatever its status.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, errors.Wrap(err, "create request")
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "request failed", "endpoint", endpoint, "request_id", requestID, "error", err)
		return 0, nil, &model.TransportError{Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &model.TransportError{Endpoint: endpoint, Err: err}
	}
	c.logger.InfoContext(ctx, "request completed",
		"endpoint", endpoint,
		"request_id", requestID,
		"status_code", res.StatusCode,
		"duration", time.Since(started),
	)
	return res.StatusCode, body, nil
}

func (c *Client) shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) waitRetry(ctx context.Context, attempt int) error {
	delay := c.retryDelay(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) retryDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := c.retryBase
	if base <= 0 {
		base = defaultRetryBase
	}
	limit := c.retryCap
	if limit <= 0 {
		limit = defaultRetryCap
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= limit/2 {
			return limit
		}
		delay *= 2
	}
	if delay > limit {
		return limit
	}
	return delay
}
