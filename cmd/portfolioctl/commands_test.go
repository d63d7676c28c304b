package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
)

// fakeAPI records the last request and answers from a fixed route table.
type fakeAPI struct {
	mu     sync.Mutex
	method string
	path   string
	token  string
	body   map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()

		api.method = r.Method
		api.path = r.URL.Path
		api.token = r.Header.Get("x-admin-token")
		api.body = nil
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &api.body)
			}
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects":
			_, _ = io.WriteString(w, `[{"id":1,"slug":"alpha","name":"Alpha","summary":"s","tech":["Go","SQL"],"status":"Ongoing","featured":true}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/projects/alpha":
			_, _ = io.WriteString(w, `{"id":1,"slug":"alpha","name":"Alpha","summary":"s","tech":["Go"],"status":"Ongoing"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/projects":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":2,"slug":"beta","name":"Beta","summary":"s","tech":[],"status":"Prototype"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/projects/2":
			_, _ = io.WriteString(w, `{"id":2,"slug":"beta","name":"Beta 2","summary":"s","tech":[],"status":"Prototype"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/projects/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) last() (method, path, token string, body map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.method, a.path, a.token, a.body
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeProjectFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const betaJSON = `{"slug":"beta","name":"Beta","summary":"s","tech":[],"status":"Prototype"}`

func TestList_Table(t *testing.T) {
	t.Parallel()
	_, srv := newFakeAPI(t)

	out, err := run(t, "", "--base-url", srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "Ongoing")
	assert.Contains(t, out, "TOTAL")
}

func TestList_JSON(t *testing.T) {
	t.Parallel()
	_, srv := newFakeAPI(t)

	out, err := run(t, "", "--base-url", srv.URL, "-o", "json", "list")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0]["slug"])
}

func TestGet(t *testing.T) {
	t.Parallel()
	api, srv := newFakeAPI(t)

	out, err := run(t, "", "--base-url", srv.URL, "-o", "json", "get", "alpha")
	require.NoError(t, err)
	_, gotPath, _, _ := api.last()
	assert.Equal(t, "/projects/alpha", gotPath)
	assert.Contains(t, out, `"slug": "alpha"`)

	_, err = run(t, "", "--base-url", srv.URL, "get", "missing")
	require.EqualError(t, err, srv.URL+": failed to fetch project: 404")
}

func TestCreate_FromFile(t *testing.T) {
	t.Parallel()
	api, srv := newFakeAPI(t)

	path := writeProjectFile(t, betaJSON)
	out, err := run(t, "", "--base-url", srv.URL, "--admin-token", "s3cret", "create", "-f", path)
	require.NoError(t, err)
	method, _, token, body := api.last()

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "s3cret", token)
	assert.Equal(t, "beta", body["slug"])
	assert.Contains(t, out, "beta")
}

func TestCreate_FromStdin(t *testing.T) {
	t.Parallel()
	api, srv := newFakeAPI(t)

	_, err := run(t, betaJSON, "--base-url", srv.URL, "--admin-token", "s3cret", "create", "-f", "-")
	require.NoError(t, err)
	_, _, _, body := api.last()
	assert.Equal(t, "beta", body["slug"])
}

func TestCreate_RequiresFile(t *testing.T) {
	t.Parallel()
	_, srv := newFakeAPI(t)

	_, err := run(t, "", "--base-url", srv.URL, "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file" not set`)
}

func TestCreate_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, srv := newFakeAPI(t)

	path := writeProjectFile(t, `{"slug":"beta","colour":"red"}`)
	_, err := run(t, "", "--base-url", srv.URL, "create", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding project file")
}

func TestUpdate_IgnoresID(t *testing.T) {
	t.Parallel()
	api, srv := newFakeAPI(t)

	path := writeProjectFile(t, `{"id":99,"slug":"beta","name":"Beta 2","summary":"s","tech":[],"status":"Prototype"}`)
	out, err := run(t, "", "--base-url", srv.URL, "--admin-token", "tok", "-o", "json", "update", "2", "-f", path)
	require.NoError(t, err)
	method, gotPath, _, body := api.last()

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/projects/2", gotPath)
	assert.NotContains(t, body, "id")
	assert.Contains(t, out, "Beta 2")
}

func TestDelete(t *testing.T) {
	t.Parallel()
	api, srv := newFakeAPI(t)

	out, err := run(t, "", "--base-url", srv.URL, "--admin-token", "tok", "delete", "2")
	require.NoError(t, err)
	method, _, token, _ := api.last()
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "deleted project 2\n", out)
}

func TestInvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "non-numeric id", args: []string{"delete", "abc"}, wantErr: `invalid project id "abc"`},
		{name: "zero id", args: []string{"delete", "0"}, wantErr: `invalid project id "0"`},
		{name: "bad output", args: []string{"-o", "yaml", "list"}, wantErr: `unknown output format "yaml"`},
		{name: "get without slug", args: []string{"get"}, wantErr: "accepts 1 arg(s), received 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, "", append([]string{"--base-url", "http://127.0.0.1:1"}, tt.args...)...)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEnvFallbacks(t *testing.T) {
	api, srv := newFakeAPI(t)
	t.Setenv(envBaseURL, srv.URL)
	t.Setenv(envAdminToken, "from-env")

	_, err := run(t, "", "delete", "2")
	require.NoError(t, err)
	_, _, token, _ := api.last()
	assert.Equal(t, "from-env", token)
}

func TestClientErrorsNameBaseURL(t *testing.T) {
	t.Parallel()
	_, srv := newFakeAPI(t)

	tests := [][]string{
		{"get", "missing"},
		{"update", "9", "-f", writeProjectFile(t, betaJSON)},
		{"delete", "9"},
	}
	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			t.Parallel()
			_, err := run(t, "", append([]string{"--base-url", srv.URL + "/", "--admin-token", "tok"}, args...)...)
			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), srv.URL+": "), "error %q should start with the API root", err)
		})
	}
}

func TestDefaultBaseURLMatchesServerDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("local", config.WithConfigDir("../../configs"), config.WithDotEnv(""))
	require.NoError(t, err)

	u, err := url.Parse(defaultBaseURL)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(cfg.Server.Port), u.Port())
}
