package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/httpclient"
)

// Gateway request headers.
const (
	headerAPIKey         = "apikey"
	headerAuthorization  = "Authorization"
	headerPrefer         = "Prefer"
	headerAcceptProfile  = "Accept-Profile"
	headerContentProfile = "Content-Profile"

	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"
)

// Credentials authenticate every gateway request.
type Credentials struct {
	APIKey string
	Schema string
}

// Requester centralizes the HTTP request lifecycle for gateway calls:
// request creation, credential headers, JSON marshaling, execution via
// httpclient.Client, response body cleanup, status checking, error
// translation and JSON decoding.
type Requester struct {
	client *httpclient.Client
	creds  Credentials
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client.
func NewRequester(client *httpclient.Client, creds Credentials, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{client: client, creds: creds, logger: logger}
}

// request describes one gateway call. Body is marshaled to JSON when
// non-nil. Out receives the decoded 2xx body when non-nil.
type request struct {
	method string
	path   string
	query  url.Values
	prefer string
	body   any
	out    any
}

// Do executes the request against the configured base URL. Any 2xx status is
// success. Other statuses become *Error. Transport and circuit breaker
// failures are wrapped and returned.
func (r *Requester) Do(ctx context.Context, rq request) error {
	req, err := r.build(ctx, rq)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.closeBody(ctx, resp)
	}
	if err != nil && resp == nil {
		r.logger.ErrorContext(ctx, "gateway request failed",
			slog.String("method", rq.method),
			slog.String("path", rq.path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w", rq.method, rq.path, err)
	}

	// httpclient.Do returns both resp and err when the last attempt ended on
	// a retryable status; the response carries the gateway's error body.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := translateError(resp)
		r.logger.ErrorContext(ctx, "unexpected gateway status",
			slog.String("method", rq.method),
			slog.String("path", rq.path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", gwErr.Code),
		)
		return gwErr
	}

	if rq.out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(rq.out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", rq.method, rq.path, err)
	}
	return nil
}

// Name returns the identifier of the underlying client.
func (r *Requester) Name() string {
	return r.client.Name()
}

// HealthCheck reports the underlying client's circuit breaker state.
func (r *Requester) HealthCheck(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *Requester) build(ctx context.Context, rq request) (*http.Request, error) {
	target := r.client.BaseURL() + rq.path
	if len(rq.query) > 0 {
		target += "?" + rq.query.Encode()
	}

	var body io.Reader = http.NoBody
	if rq.body != nil {
		raw, err := json.Marshal(rq.body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body for %s: %w", rq.method, rq.path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, rq.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", rq.method, rq.path, err)
	}

	req.Header.Set(headerAPIKey, r.creds.APIKey)
	req.Header.Set(headerAuthorization, "Bearer "+r.creds.APIKey)
	req.Header.Set("Accept", "application/json")
	if r.creds.Schema != "" {
		req.Header.Set(headerAcceptProfile, r.creds.Schema)
		if rq.body != nil {
			req.Header.Set(headerContentProfile, r.creds.Schema)
		}
	}
	if rq.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rq.prefer != "" {
		req.Header.Set(headerPrefer, rq.prefer)
	}

	return req, nil
}

// closeBody drains and closes an HTTP response body, logging on failure.
func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
