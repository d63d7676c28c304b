package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/portfolio-service/internal/adapters/http"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/guard"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/portfolio-service/internal/app"
	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/health"
	"github.com/jsamuelsen11/portfolio-service/mocks"
)

const testAdminToken = "test-admin-token"

func allowAll(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockProjectService) {
	t.Helper()
	svc := mocks.NewMockProjectService(t)
	registry := mocks.NewMockHealthRegistry(t)

	ph := handlers.NewProjectHandler(svc, 0)
	hh := handlers.NewHealthHandler(registry)

	router := adapthttp.NewRouter(ph, hh, allowAll)
	return router, svc
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/projects/"},
		{http.MethodPost, "/projects/"},
		{http.MethodGet, "/projects/{slug}"},
		{http.MethodPut, "/projects/{id}"},
		{http.MethodDelete, "/projects/{id}"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered; have %v", key, registered)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockProjectService(t)
	registry := mocks.NewMockHealthRegistry(t)

	ph := handlers.NewProjectHandler(svc, 0)
	hh := handlers.NewHealthHandler(registry)

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router := adapthttp.NewRouter(ph, hh, allowAll, testMW)

	registry.EXPECT().CheckAll(mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_AdminOnlyOnMutatingRoutes(t *testing.T) {
	t.Parallel()

	svc := mocks.NewMockProjectService(t)
	registry := mocks.NewMockHealthRegistry(t)

	var guarded []string
	admin := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			guarded = append(guarded, r.Method)
			w.WriteHeader(http.StatusForbidden)
		})
	}

	router := adapthttp.NewRouter(handlers.NewProjectHandler(svc, 0), handlers.NewHealthHandler(registry), admin)

	svc.EXPECT().ListProjects(mock.Anything).Return([]project.Project{}, nil)

	requests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/projects", http.StatusOK},
		{http.MethodPost, "/projects", http.StatusForbidden},
		{http.MethodPut, "/projects/1", http.StatusForbidden},
		{http.MethodDelete, "/projects/1", http.StatusForbidden},
	}

	for _, rq := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(rq.method, rq.path, nil))
		if rec.Code != rq.want {
			t.Errorf("%s %s status = %d, want %d", rq.method, rq.path, rec.Code, rq.want)
		}
	}

	want := []string{http.MethodPost, http.MethodPut, http.MethodDelete}
	if strings.Join(guarded, ",") != strings.Join(want, ",") {
		t.Errorf("guarded = %v, want %v", guarded, want)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/projects/1", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

// --- Full stack over the memory store ---

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		Guard:     config.GuardConfig{Header: guard.DefaultHeader, AdminToken: testAdminToken},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
}

// newStack wires the router the way the server does, over a fresh memory
// store.
func newStack(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	store, err := memory.New()
	require.NoError(t, err)

	logger := discardLogger()
	svc := app.NewProjectService(store, nil, logger)

	registry := health.New()
	registry.Register(store)

	return adapthttp.NewRouter(
		handlers.NewProjectHandler(svc, cfg.Server.MaxBodyBytes),
		handlers.NewHealthHandler(registry),
		guard.Require(guard.NewSharedSecret(cfg.Guard.Header, cfg.Guard.AdminToken), logger),
		adapthttp.StandardMiddleware(cfg, logger, nil)...,
	)
}

type stackClient struct {
	t       *testing.T
	handler http.Handler
}

// rawBody is sent as is, without JSON encoding.
type rawBody string

func (c stackClient) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case rawBody:
		buf.WriteString(string(b))
	default:
		require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequestWithContext(context.Background(), method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(guard.DefaultHeader, token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func projectBody(slug string) map[string]any {
	return map[string]any{
		"slug":     slug,
		"name":     "Project " + slug,
		"summary":  "summary of " + slug,
		"tech":     []string{"Go", "Postgres"},
		"status":   "Ongoing",
		"repo_url": "https://github.com/x/" + slug,
	}
}

func TestStack_CRUDLifecycle(t *testing.T) {
	t.Parallel()

	c := stackClient{t: t, handler: newStack(t, testConfig())}

	rec := c.do(http.MethodGet, "/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = c.do(http.MethodPost, "/projects", projectBody("alpha"), testAdminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, false, created["featured"])

	rec = c.do(http.MethodGet, "/projects/alpha", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(mustJSON(t, created)), rec.Body.String())

	update := projectBody("alpha")
	update["name"] = "Alpha Renamed"
	update["featured"] = true
	delete(update, "repo_url")
	rec = c.do(http.MethodPut, "/projects/1", update, testAdminToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alpha Renamed", updated["name"])
	assert.NotContains(t, updated, "repo_url", "full replace clears omitted optionals")

	rec = c.do(http.MethodDelete, "/projects/1", nil, testAdminToken)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = c.do(http.MethodGet, "/projects/alpha", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is an idempotent no-op.
	rec = c.do(http.MethodDelete, "/projects/1", nil, testAdminToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStack_ListOrderedByID(t *testing.T) {
	t.Parallel()

	c := stackClient{t: t, handler: newStack(t, testConfig())}

	for _, slug := range []string{"c", "a", "b"} {
		rec := c.do(http.MethodPost, "/projects", projectBody(slug), testAdminToken)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := c.do(http.MethodGet, "/projects", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, float64(i+1), p["id"])
	}
	assert.Equal(t, "c", list[0]["slug"])
}

func TestStack_Errors(t *testing.T) {
	t.Parallel()

	invalid := projectBody("bad")
	invalid["status"] = "Done"
	invalid["tech"] = []any{"Go", 3}

	withID := projectBody("with-id")
	withID["id"] = 5

	badURL := projectBody("bad-url")
	badURL["demo_url"] = "not a url"

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		token      string
		wantStatus int
		wantFields []string
	}{
		{name: "create without token", method: http.MethodPost, path: "/projects", body: projectBody("x"), wantStatus: http.StatusForbidden},
		{name: "create with wrong token", method: http.MethodPost, path: "/projects", body: projectBody("x"), token: "nope", wantStatus: http.StatusForbidden},
		{
			name: "create invalid body", method: http.MethodPost, path: "/projects", body: invalid, token: testAdminToken,
			wantStatus: http.StatusBadRequest, wantFields: []string{"body.status", "body.tech[1]"},
		},
		{
			name: "create with id", method: http.MethodPost, path: "/projects", body: withID, token: testAdminToken,
			wantStatus: http.StatusBadRequest, wantFields: []string{"body.id"},
		},
		{
			name: "create with bad url", method: http.MethodPost, path: "/projects", body: badURL, token: testAdminToken,
			wantStatus: http.StatusBadRequest, wantFields: []string{"body.demo_url"},
		},
		{
			name: "create non-object body", method: http.MethodPost, path: "/projects", body: []string{"a"}, token: testAdminToken,
			wantStatus: http.StatusBadRequest, wantFields: []string{"body"},
		},
		{
			name: "create with trailing garbage", method: http.MethodPost, path: "/projects",
			body:  rawBody(`{"slug":"x","name":"X","summary":"s","tech":[],"status":"Prototype"} {"garbage"`),
			token: testAdminToken, wantStatus: http.StatusBadRequest, wantFields: []string{"body"},
		},
		{
			name: "create with second document", method: http.MethodPost, path: "/projects",
			body:  rawBody(`{"slug":"x","name":"X","summary":"s","tech":[],"status":"Prototype"}{}`),
			token: testAdminToken, wantStatus: http.StatusBadRequest, wantFields: []string{"body"},
		},
		{
			name: "update with trailing garbage", method: http.MethodPut, path: "/projects/1",
			body:  rawBody(`{"slug":"x","name":"X","summary":"s","tech":[],"status":"Prototype"} x`),
			token: testAdminToken, wantStatus: http.StatusBadRequest, wantFields: []string{"body"},
		},
		{name: "update missing id", method: http.MethodPut, path: "/projects/42", body: projectBody("x"), token: testAdminToken, wantStatus: http.StatusNotFound},
		{
			name: "update malformed id", method: http.MethodPut, path: "/projects/abc", body: projectBody("x"), token: testAdminToken,
			wantStatus: http.StatusBadRequest, wantFields: []string{"path.id"},
		},
		{name: "delete malformed id", method: http.MethodDelete, path: "/projects/1e3", token: testAdminToken, wantStatus: http.StatusBadRequest},
		{name: "delete without token", method: http.MethodDelete, path: "/projects/1", wantStatus: http.StatusForbidden},
		{name: "get missing slug", method: http.MethodGet, path: "/projects/missing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := stackClient{t: t, handler: newStack(t, testConfig())}
			rec := c.do(tt.method, tt.path, tt.body, tt.token)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			if len(tt.wantFields) == 0 {
				return
			}
			var problem struct {
				Errors []struct {
					Location string `json:"location"`
				} `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			var got []string
			for _, e := range problem.Errors {
				got = append(got, e.Location)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestStack_MissingAdminTokenFailsClosed(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Guard.AdminToken = ""
	c := stackClient{t: t, handler: newStack(t, cfg)}

	rec := c.do(http.MethodPost, "/projects", projectBody("x"), "anything")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")

	// Reads still work.
	rec = c.do(http.MethodGet, "/projects", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStack_GlobalHeaders(t *testing.T) {
	t.Parallel()

	c := stackClient{t: t, handler: newStack(t, testConfig())}
	rec := c.do(http.MethodGet, "/health/ready", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestStack_RateLimited(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2}
	c := stackClient{t: t, handler: newStack(t, cfg)}

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, c.do(http.MethodGet, "/projects", nil, "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
