package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
)

// withChiParams attaches path parameters the way chi's router would.
func withChiParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for name, value := range params {
		routeCtx.URLParams.Add(name, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func boolPtr(b bool) *bool { return &b }

// validProject is the stored form of validBody.
func validProject() project.Project {
	return project.Project{
		ID: 1,
		Input: project.Input{
			Slug:     "portfolio-website",
			Name:     "Portfolio Website",
			Summary:  "A hub for my projects.",
			Tech:     []string{"React", "Go"},
			Status:   project.StatusInProgress,
			Featured: boolPtr(true),
		},
	}
}

func validBody() map[string]any {
	p := validProject()
	return map[string]any{
		"slug":    p.Slug,
		"name":    p.Name,
		"summary": p.Summary,
		"tech":    p.Tech,
		"status":  string(p.Status),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err, "encoding request body")
	return bytes.NewBuffer(raw)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "decoding response body %q", rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status; body = %s", rec.Body.String())
}
