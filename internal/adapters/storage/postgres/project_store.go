package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ProjectStore  = (*ProjectStore)(nil)
	_ ports.HealthChecker = (*ProjectStore)(nil)
)

var selectColumns = strings.Join(project.Columns, ", ")

var (
	listQuery = `select ` + selectColumns + ` from projects order by id asc`

	getBySlugQuery = `select ` + selectColumns + ` from projects
where slug = $1
order by id asc
limit 1`

	insertQuery = `insert into projects
    (slug, name, summary, tech, status, featured, description, demo_url, repo_url, hero_image_url)
values ($1, $2, $3, $4, $5, coalesce($6, false), $7, $8, $9, $10)
returning ` + selectColumns

	updateQuery = `update projects
set slug = $2, name = $3, summary = $4, tech = $5, status = $6,
    featured = $7, description = $8, demo_url = $9, repo_url = $10, hero_image_url = $11
where id = $1
returning ` + selectColumns
)

const deleteQuery = `delete from projects where id = $1`

// ProjectStore reads and writes the projects table. Errors from pgx are
// returned wrapped but otherwise untouched.
type ProjectStore struct {
	pool *pgxpool.Pool
}

// NewProjectStore creates a ProjectStore on an open pool.
func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

// ListProjects returns every row ordered by id.
func (s *ProjectStore) ListProjects(ctx context.Context) ([]project.Record, error) {
	return s.query(ctx, "list projects", listQuery)
}

// GetProjectBySlug returns the lowest-id row with the given slug, or nil.
func (s *ProjectStore) GetProjectBySlug(ctx context.Context, slug string) (project.Record, error) {
	rows, err := s.query(ctx, "get project by slug", getBySlugQuery, slug)
	if err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// InsertProject inserts the input and returns the stored row. An omitted
// featured falls back to false and omitted optionals to null.
func (s *ProjectStore) InsertProject(ctx context.Context, in project.Input) (project.Record, error) {
	rows, err := s.query(ctx, "insert project", insertQuery,
		in.Slug, in.Name, in.Summary, tech(in), string(in.Status),
		in.Featured, in.Description, in.DemoURL, in.RepoURL, in.HeroImageURL,
	)
	if err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// UpdateProject replaces every writable column of the row with the given id
// and returns the new row, or nil when no row matched.
func (s *ProjectStore) UpdateProject(ctx context.Context, id int64, in project.Input) (project.Record, error) {
	rows, err := s.query(ctx, "update project", updateQuery,
		id, in.Slug, in.Name, in.Summary, tech(in), string(in.Status),
		lo.FromPtrOr(in.Featured, false), in.Description, in.DemoURL, in.RepoURL, in.HeroImageURL,
	)
	if err != nil {
		return nil, err
	}
	return lo.FirstOrEmpty(rows), nil
}

// DeleteProject removes the row with the given id. Deleting a missing row is
// not an error.
func (s *ProjectStore) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, deleteQuery, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Name returns the identifier used when this store is registered with a
// [ports.HealthRegistry].
func (s *ProjectStore) Name() string {
	return "postgres"
}

// HealthCheck pings the pool.
func (s *ProjectStore) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

func (s *ProjectStore) query(ctx context.Context, op, sql string, args ...any) ([]project.Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return lo.Map(maps, func(m map[string]any, _ int) project.Record { return project.Record(m) }), nil
}

// tech never sends a null array; the column is not nullable.
func tech(in project.Input) []string {
	if in.Tech == nil {
		return []string{}
	}
	return in.Tech
}
