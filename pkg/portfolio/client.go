// Package portfolio is a Go client for the portfolio projects API.
//
// Reads are public. Create, update and delete send the admin secret in the
// x-admin-token header. Any non-2xx response is returned as a *StatusError.
package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AdminHeader is the header the server reads the admin secret from.
const AdminHeader = "x-admin-token"

const defaultTimeout = 10 * time.Second

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the portfolio API. It does not retry or cache.
type Client struct {
	baseURL     string
	doer        Doer
	adminHeader string
	adminToken  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithAdminToken sets the secret used when a mutating call is given an empty
// one.
func WithAdminToken(token string) Option {
	return func(c *Client) { c.adminToken = token }
}

// WithAdminHeader overrides the header name the secret is sent in.
func WithAdminHeader(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.adminHeader = name
		}
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		doer:        &http.Client{Timeout: defaultTimeout},
		adminHeader: AdminHeader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchProjects returns every project ordered by id.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.call(ctx, "fetch projects", http.MethodGet, "/projects", nil, "", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Project{}
	}
	return out, nil
}

// FetchProjectBySlug returns the project with the given slug. A missing
// project is a *StatusError with StatusCode 404; see IsNotFound.
func (c *Client) FetchProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	var out Project
	if err := c.call(ctx, "fetch project", http.MethodGet, "/projects/"+url.PathEscape(slug), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project and returns it with its assigned id.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput, secret string) (*Project, error) {
	var out Project
	if err := c.call(ctx, "create project", http.MethodPost, "/projects", in, secret, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject replaces the project with the given id.
func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput, secret string) (*Project, error) {
	var out Project
	if err := c.call(ctx, "update project", http.MethodPut, projectPath(id), in, secret, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes the project with the given id.
func (c *Client) DeleteProject(ctx context.Context, id int64, secret string) error {
	return c.call(ctx, "delete project", http.MethodDelete, projectPath(id), nil, secret, nil)
}

func projectPath(id int64) string {
	return "/projects/" + strconv.FormatInt(id, 10)
}

// call sends one request. body is JSON-encoded when non-nil; a non-empty
// secret (or the client default for mutating methods) is sent in the admin
// header. out, when non-nil, receives the decoded 2xx body.
func (c *Client) call(ctx context.Context, op, method, path string, body any, secret string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if secret == "" {
			secret = c.adminToken
		}
		req.Header.Set(c.adminHeader, secret)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}
