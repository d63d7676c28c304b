// Package httpclient is the outbound client used for the REST gateway. Each
// call runs through a circuit breaker, gets the inbound request and
// correlation IDs plus W3C trace context, is traced as a client span and,
// for idempotent methods, may be retried with backoff:
//
//	client := httpclient.New(pg.BaseURL, &pg.Client, "postgrest", metrics, logger)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
)

// Client sends requests to one downstream service.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	breaker     *gobreaker.CircuitBreaker[struct{}]
	retry       retryPolicy
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates a client for the service at baseURL. serviceName labels spans,
// metrics and the health check. metrics may be nil.
func New(baseURL string, cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		serviceName: serviceName,
		breaker:     newBreaker(serviceName, cfg.CircuitBreaker, logger),
		retry:       newRetryPolicy(cfg.Retry),
		metrics:     metrics,
		logger:      logger,
	}
}

// Do sends req and returns the downstream response.
//
// A non-retryable status, 4xx included, comes back with a nil error. If the
// final attempt still ends on a retryable status, both the response and an
// error are returned and the caller must close the body. Breaker rejections
// and transport failures return a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		propagateIDs(ctx, req.Header)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		req = req.WithContext(spanCtx)
		sendErr := c.send(spanCtx, req, &resp)
		finishSpan(span, resp, sendErr)

		return struct{}{}, sendErr
	})

	c.recordMetrics(ctx, req.Method, start, resp, err)

	return resp, err
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name identifies the downstream service in the readiness report.
func (c *Client) Name() string {
	return c.serviceName
}

// HealthCheck reports the breaker state without touching the network. A
// closed breaker is healthy; half-open and open are reported as errors.
func (c *Client) HealthCheck(_ context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

// State returns the breaker state name: closed, half-open or open.
func (c *Client) State() string {
	return c.breaker.State().String()
}
