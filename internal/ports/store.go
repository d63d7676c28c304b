package ports

import (
	"context"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
)

// ProjectStore defines the persistence port for the projects table.
// Implemented by the storage adapters; called by the application layer.
// Rows are returned as raw records and must be validated by the caller.
// Store errors are returned as-is.
type ProjectStore interface {
	// ListProjects returns every row ordered by id ascending.
	ListProjects(ctx context.Context) ([]project.Record, error)

	// GetProjectBySlug returns the first row whose slug matches, or a nil
	// record when there is none.
	GetProjectBySlug(ctx context.Context, slug string) (project.Record, error)

	// InsertProject inserts a row and returns it with its assigned id.
	InsertProject(ctx context.Context, in project.Input) (project.Record, error)

	// UpdateProject replaces every writable column of the row with the given
	// id and returns the new row, or a nil record when no row matched.
	UpdateProject(ctx context.Context, id int64, in project.Input) (project.Record, error)

	// DeleteProject removes the row with the given id. Missing rows are not
	// an error.
	DeleteProject(ctx context.Context, id int64) error
}
