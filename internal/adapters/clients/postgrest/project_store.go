package postgrest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/lo"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ProjectStore  = (*ProjectStore)(nil)
	_ ports.HealthChecker = (*ProjectStore)(nil)
)

// ProjectStore is the outbound adapter for the projects table behind a
// PostgREST gateway. Filters use the gateway's query grammar
// (column=eq.value, order=id.asc). Writes ask for the affected rows back with
// Prefer: return=representation so that a single round trip yields the
// stored row.
//
// Gateway errors are returned as *Error and are not interpreted; the
// application layer treats every store error as an internal failure.
type ProjectStore struct {
	req   *Requester
	table string
}

// NewProjectStore creates a ProjectStore that sends requests for table
// through the given client.
func NewProjectStore(client *httpclient.Client, table string, creds Credentials, logger *slog.Logger) *ProjectStore {
	return &ProjectStore{
		req:   NewRequester(client, creds, logger),
		table: table,
	}
}

// ListProjects fetches every row ordered by id.
func (s *ProjectStore) ListProjects(ctx context.Context) ([]project.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "id.asc")

	rows := []project.Record{}
	if err := s.req.Do(ctx, request{method: http.MethodGet, path: s.path(), query: q, out: &rows}); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []project.Record{}
	}
	return rows, nil
}

// GetProjectBySlug fetches the lowest-id row whose slug matches, or nil.
func (s *ProjectStore) GetProjectBySlug(ctx context.Context, slug string) (project.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("slug", "eq."+slug)
	q.Set("order", "id.asc")
	q.Set("limit", "1")

	var rows []project.Record
	if err := s.req.Do(ctx, request{method: http.MethodGet, path: s.path(), query: q, out: &rows}); err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// InsertProject posts the input and returns the stored row. Optional fields
// the caller omitted are left to the column defaults.
func (s *ProjectStore) InsertProject(ctx context.Context, in project.Input) (project.Record, error) {
	q := url.Values{}
	q.Set("select", "*")

	var rows []project.Record
	err := s.req.Do(ctx, request{
		method: http.MethodPost,
		path:   s.path(),
		query:  q,
		prefer: preferRepresentation,
		body:   in.Record(),
		out:    &rows,
	})
	if err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// UpdateProject replaces every writable column of the row with the given id
// and returns the new row, or nil when no row matched.
func (s *ProjectStore) UpdateProject(ctx context.Context, id int64, in project.Input) (project.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", idFilter(id))

	var rows []project.Record
	err := s.req.Do(ctx, request{
		method: http.MethodPatch,
		path:   s.path(),
		query:  q,
		prefer: preferRepresentation,
		body:   in.ReplacementRow(),
		out:    &rows,
	})
	if err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// DeleteProject removes the row with the given id. Deleting a missing row is
// not an error.
func (s *ProjectStore) DeleteProject(ctx context.Context, id int64) error {
	q := url.Values{}
	q.Set("id", idFilter(id))

	return s.req.Do(ctx, request{
		method: http.MethodDelete,
		path:   s.path(),
		query:  q,
		prefer: preferMinimal,
	})
}

// Name returns the identifier used when this store is registered with a
// [ports.HealthRegistry].
func (s *ProjectStore) Name() string {
	return s.req.Name()
}

// HealthCheck reports the gateway's availability from the circuit breaker
// state. No network call is made.
func (s *ProjectStore) HealthCheck(ctx context.Context) error {
	return s.req.HealthCheck(ctx)
}

func (s *ProjectStore) path() string {
	return "/" + url.PathEscape(s.table)
}

func idFilter(id int64) string {
	return "eq." + strconv.FormatInt(id, 10)
}
