package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
)

// jitterFraction bounds the random spread applied to each delay (±25%).
const jitterFraction = 0.25

type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		multiplier:      cfg.Multiplier,
	}
}

// attemptsFor returns how many times a request with method may be sent.
func (p retryPolicy) attemptsFor(method string) int {
	if !isIdempotent(method) {
		return 1
	}
	return p.maxAttempts
}

// delay returns the wait before retry number attempt (1 for the first
// retry). A Retry-After hint from the gateway wins over the computed
// backoff, but neither exceeds maxInterval.
func (p retryPolicy) delay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 {
		return min(hint, p.maxInterval)
	}

	d := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt-1))
	d = min(d, float64(p.maxInterval))
	d += d * jitterFraction * (2*secureRandFloat64() - 1)

	return time.Duration(max(d, 0))
}

// send performs up to attemptsFor(req.Method) attempts. The final response is
// written to out rather than returned; the caller closes its body.
func (c *Client) send(ctx context.Context, req *http.Request, out **http.Response) error {
	attempts := c.retry.attemptsFor(req.Method)
	if attempts <= 0 {
		return fmt.Errorf("httpclient: max_attempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferBody(req)
	if err != nil {
		return err
	}

	var (
		lastErr error
		hint    time.Duration
	)
	for attempt := range attempts {
		if attempt > 0 {
			if err := c.wait(ctx, req, attempt, hint, lastErr); err != nil {
				return err
			}
		}
		rewindBody(req, body)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return err
			}
			lastErr, hint = err, 0
			continue
		}

		if !isRetryableStatus(resp.StatusCode) {
			*out = resp
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.serviceName)
		if attempt == attempts-1 {
			*out = resp
			return lastErr
		}
		hint = retryAfter(resp.Header.Get("Retry-After"), time.Now())
		discard(resp)
	}

	return lastErr
}

func (c *Client) wait(ctx context.Context, req *http.Request, attempt int, hint time.Duration, lastErr error) error {
	d := c.retry.delay(attempt, hint)

	logging.FromContext(ctx).WarnContext(ctx, "retrying gateway request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryAfter parses a Retry-After header given either as delay-seconds or as
// an HTTP date. Unparseable or past values yield zero.
func retryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

func rewindBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// discard drains resp so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// secureRandFloat64 returns a value in [0, 1) built from 53 random bits.
func secureRandFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// isRetryable reports whether a transport error is worth another attempt.
// The caller giving up never is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// isRetryableStatus reports whether the gateway answered with a transient
// failure. A plain 500 from PostgREST is a database error and is not retried.
func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
