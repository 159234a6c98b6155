package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-call request id.
const RequestIDHeader = "X-Atlan-Request-Id"

const maxRetryWait = 30 * time.Second

// Client executes calls against the catalog API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	maxRetries int
	retryWait  time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*response]
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithLogger sets the logger used for per-attempt debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// New creates a client from configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	c := &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeoutDuration},
		baseURL:    base.String(),
		token:      cfg.APIToken,
		userAgent:  cfg.UserAgent,
		maxRetries: max(cfg.MaxRetries, 0),
		retryWait:  time.Duration(max(cfg.RetryWaitMillis, 1)) * time.Millisecond,
		logger:     zap.NewNop(),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = newBreaker(cfg, c.logger)

	return c, nil
}

func newBreaker(cfg Config, logger *zap.Logger) *gobreaker.CircuitBreaker[*response] {
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	openFor := cfg.BreakerTimeoutSeconds
	if openFor <= 0 {
		openFor = 30
	}

	return gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: 1,
		Timeout:     time.Duration(openFor) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// BaseURL returns the normalized tenant URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends body (JSON-encoded unless nil) to the endpoint and decodes the response into out
// (skipped when out is nil). Transient failures are retried.
func (c *Client) Call(ctx context.Context, ep Endpoint, query url.Values, body any, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", ep, err)
		}
		payload = b
	}

	reqURL := c.baseURL + ep.Path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("endpoint", ep.String()), zap.String("request_id", requestID))

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		start := time.Now()
		resp, err := c.breaker.Execute(func() (*response, error) {
			return c.do(ctx, ep.Method, reqURL, payload, requestID)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: %w", ep, ErrCircuitOpen)
		}
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		var apiErr *APIError
		if err == nil && resp.status >= 300 {
			apiErr = newStatusError(resp.status, resp.body, requestID)
		} else if err != nil && !errors.As(err, &apiErr) {
			return err
		}

		if apiErr == nil {
			log.Debug("Call succeeded",
				zap.Int("status", resp.status),
				zap.Int("attempt", attempt),
				zap.Duration("took", time.Since(start)),
			)
			if out == nil || len(resp.body) == 0 {
				return nil
			}
			if err := json.Unmarshal(resp.body, out); err != nil {
				return fmt.Errorf("failed to decode response from %s: %w", ep, err)
			}
			return nil
		}

		if !apiErr.Retryable() || attempt >= c.maxRetries {
			log.Debug("Call failed", zap.Int("attempt", attempt), zap.Error(apiErr))
			return apiErr
		}

		wait := c.backoff(attempt, resp)
		log.Debug("Retrying call",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(apiErr),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// do performs one HTTP attempt. Transient failures are returned as errors so that
// the breaker counts them; every other response is returned as is.
func (c *Client) do(ctx context.Context, method, reqURL string, payload []byte, requestID string) (*response, error) {
	var bodyReader io.Reader = http.NoBody
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set(RequestIDHeader, requestID)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindConnection, RequestID: requestID, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindConnection, RequestID: requestID, Err: fmt.Errorf("read response: %w", err)}
	}

	resp := &response{status: httpResp.StatusCode, header: httpResp.Header, body: body}
	if apiErr := newStatusError(resp.status, body, requestID); resp.status >= 300 && apiErr.Retryable() {
		return resp, apiErr
	}
	return resp, nil
}

// backoff returns the wait before the next attempt: Retry-After when the server sent
// one, otherwise exponential growth from retryWait with jitter.
func (c *Client) backoff(attempt int, resp *response) time.Duration {
	if resp != nil {
		if s := resp.header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
				return min(time.Duration(secs)*time.Second, maxRetryWait)
			}
		}
	}
	wait := c.retryWait << attempt
	if wait <= 0 || wait > maxRetryWait {
		wait = maxRetryWait
	}
	half := wait / 2
	return half + rand.N(half+1)
}
