// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/portfolio-service/internal/domain"
	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService on top of a ProjectStore.
// Untrusted input is validated before it reaches the store, and every row
// the store returns is validated again before it reaches the caller. Rows
// that fail the second check surface as domain.ErrCorruptRecord; their field
// details are logged, never returned.
type ProjectService struct {
	store   ports.ProjectStore
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewProjectService creates a ProjectService. metrics may be nil. A nil
// logger discards output.
func NewProjectService(store ports.ProjectStore, metrics *telemetry.Metrics, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// ListProjects returns every stored project ordered by id.
func (s *ProjectService) ListProjects(ctx context.Context) ([]project.Project, error) {
	s.logger.InfoContext(ctx, "listing projects")

	rows, err := s.store.ListProjects(ctx)
	s.metrics.RecordStoreOperation(ctx, "ListProjects", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	projects, err := project.ValidateRecordList(rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored projects failed validation",
			slog.String("operation", "ListProjects"),
			slog.Int("rows", len(rows)),
			slog.Any("error", err),
		)
		return nil, domain.ErrCorruptRecord
	}

	return projects, nil
}

// GetProjectBySlug returns the first project with the given slug.
func (s *ProjectService) GetProjectBySlug(ctx context.Context, slug string) (*project.Project, error) {
	s.logger.InfoContext(ctx, "fetching project", slog.String("slug", slug))

	row, err := s.store.GetProjectBySlug(ctx, slug)
	s.metrics.RecordStoreOperation(ctx, "GetProjectBySlug", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch project",
			slog.String("operation", "GetProjectBySlug"),
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	return s.checkStored(ctx, "GetProjectBySlug", row)
}

// CreateProject validates the candidate and inserts it.
func (s *ProjectService) CreateProject(ctx context.Context, candidate project.Record) (*project.Project, error) {
	in, err := project.ValidateCreateInput(candidate)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "creating project", slog.String("slug", in.Slug))

	row, err := s.store.InsertProject(ctx, in)
	s.metrics.RecordStoreOperation(ctx, "InsertProject", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", "CreateProject"),
			slog.String("slug", in.Slug),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.checkStored(ctx, "CreateProject", row)
}

// UpdateProject validates the candidate and replaces the project with the
// given id.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, candidate project.Record) (*project.Project, error) {
	in, err := project.ValidateCreateInput(candidate)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "updating project", slog.Int64("id", id))

	row, err := s.store.UpdateProject(ctx, id, in)
	s.metrics.RecordStoreOperation(ctx, "UpdateProject", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update project",
			slog.String("operation", "UpdateProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	return s.checkStored(ctx, "UpdateProject", row)
}

// DeleteProject removes the project with the given id.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting project", slog.Int64("id", id))

	err := s.store.DeleteProject(ctx, id)
	s.metrics.RecordStoreOperation(ctx, "DeleteProject", err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete project",
			slog.String("operation", "DeleteProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}

func (s *ProjectService) checkStored(ctx context.Context, operation string, row project.Record) (*project.Project, error) {
	p, err := project.ValidateRecord(row)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored project failed validation",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
		return nil, domain.ErrCorruptRecord
	}
	return &p, nil
}
