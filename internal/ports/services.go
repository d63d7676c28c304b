package ports

import (
	"context"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
)

// ProjectService defines the service port for portfolio project operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every project it returns has passed schema validation.
type ProjectService interface {
	// ListProjects returns every stored project ordered by id.
	// Returns domain.ErrCorruptRecord if any stored row fails validation.
	ListProjects(ctx context.Context) ([]project.Project, error)

	// GetProjectBySlug returns the first project whose slug matches.
	// Returns domain.ErrNotFound if no project has the slug.
	GetProjectBySlug(ctx context.Context, slug string) (*project.Project, error)

	// CreateProject validates the raw candidate and stores it.
	// Returns domain.ErrValidation if the candidate fails validation.
	CreateProject(ctx context.Context, candidate project.Record) (*project.Project, error)

	// UpdateProject validates the raw candidate and replaces the stored
	// project with the given id.
	// Returns domain.ErrValidation if the candidate fails validation and
	// domain.ErrNotFound if no project has the id.
	UpdateProject(ctx context.Context, id int64, candidate project.Record) (*project.Project, error)

	// DeleteProject removes the project with the given id. Deleting an id
	// that does not exist is not an error.
	DeleteProject(ctx context.Context, id int64) error
}
