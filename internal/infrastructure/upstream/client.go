// Package upstream is the HTTP client of the order-delivery REST API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erp/console/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	tracerName = "order-console/upstream"
	maxBackoff = 5 * time.Second
	// maxBodySize bounds how much of a response body is read.
	maxBodySize = 16 << 20
)

// RequestObserver receives one call per attempted request. status is 0 when
// no response was received.
type RequestObserver interface {
	ObserveRequest(method, resource string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, time.Duration) {}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// HTTPStatus returns the status code of the response
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// IsNotFound reports whether err is a 404 from the upstream API
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client calls the order-delivery API with an optional timeout, retry and
// outbound rate limit. It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      *url.URL
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	observer     RequestObserver
	logger       *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithObserver sets the request observer, typically the Prometheus metrics
func WithObserver(o RequestObserver) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client from configuration
func New(cfg config.UpstreamConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid upstream base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:      base,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: cfg.RetryBackoff,
		observer:     nopObserver{},
		logger:       zap.NewNop(),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request is one call to the upstream API. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Response is a 2xx response
type Response struct {
	StatusCode int
	Body       []byte
	Attempts   int
	Duration   time.Duration
}

// Get fetches path and returns the body of a 2xx response
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Put sends body as JSON to path and returns the body of a 2xx response
func (c *Client) Put(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Query: query, Body: body})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Post sends body as JSON to path and returns the body of a 2xx response
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query, Body: body})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Delete removes the resource at path
func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Query: query})
	return err
}

// Do executes req, retrying transport failures, 5xx and 429 responses up to
// the configured number of retries. POST requests are sent once. Any non-2xx
// final response is returned as a *StatusError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target := c.resolve(req.Path, req.Query)

	var payload []byte
	if req.Body != nil {
		var err error
		if payload, err = json.Marshal(req.Body); err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, req.Method+" "+resourceOf(req.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", target),
		),
	)
	defer span.End()

	retries := c.maxRetries
	if req.Method == http.MethodPost {
		retries = 0
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				lastErr = err
				break
			}
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				lastErr = fmt.Errorf("rate limit wait: %w", err)
				break
			}
		}

		status, body, err := c.attempt(ctx, req, target, payload)
		lastErr = err
		if err == nil {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			return &Response{StatusCode: status, Body: body, Attempts: attempt + 1, Duration: time.Since(start)}, nil
		}
		if !retryable(ctx, status, err) {
			break
		}
		c.logger.Debug("retrying upstream request",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, req Request, target string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observer.ObserveRequest(req.Method, resourceOf(req.Path), 0, time.Since(start))
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.observer.ObserveRequest(req.Method, resourceOf(req.Path), resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, data, &StatusError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Body: data}
	}
	return resp.StatusCode, data, nil
}

func retryable(ctx context.Context, status int, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if status == 0 {
		return err != nil
	}
	return status >= 500 || status == http.StatusTooManyRequests
}

func (c *Client) backoff(attempt int) time.Duration {
	delay := float64(c.retryBackoff) * math.Pow(2, float64(attempt-1))
	delay = math.Min(delay, float64(maxBackoff))
	jitter := delay * 0.25
	return time.Duration(delay + (rand.Float64()*2-1)*jitter)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// resourceOf returns the first path segment, used as a low-cardinality label.
func resourceOf(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
