// Package memory implements the project store in process on top of
// hashicorp/go-memdb. It backs the local profile and the router tests and
// loses every row on restart.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-memdb"
	"github.com/samber/lo"

	"github.com/jsamuelsen11/portfolio-service/internal/domain/project"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

const (
	tableProjects = "projects"
	indexID       = "id"
	indexSlug     = "slug"
)

// Compile-time interface checks.
var (
	_ ports.ProjectStore  = (*ProjectStore)(nil)
	_ ports.HealthChecker = (*ProjectStore)(nil)
)

// row is the object indexed by memdb. ID and Slug are copies of the
// matching columns in Data.
type row struct {
	ID   int64
	Slug string
	Data project.Record
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableProjects: {
				Name: tableProjects,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
					// Slugs are not unique.
					indexSlug: {
						Name:    indexSlug,
						Indexer: &memdb.StringFieldIndex{Field: "Slug"},
					},
				},
			},
		},
	}
}

// ProjectStore keeps projects in a memdb table. Ids start at 1 and are
// never reused, even after a delete.
type ProjectStore struct {
	db *memdb.MemDB

	// nextID is only touched inside write transactions, which memdb
	// serializes.
	nextID int64
}

// New creates an empty ProjectStore.
func New() (*ProjectStore, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("creating memdb: %w", err)
	}
	return &ProjectStore{db: db, nextID: 1}, nil
}

// ListProjects returns every row ordered by id.
func (s *ProjectStore) ListProjects(_ context.Context) ([]project.Record, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	rows, err := collect(txn.Get(tableProjects, indexID))
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b *row) int { return cmp.Compare(a.ID, b.ID) })
	return lo.Map(rows, func(r *row, _ int) project.Record { return r.record() }), nil
}

// GetProjectBySlug returns the lowest-id row with the given slug, or nil.
func (s *ProjectStore) GetProjectBySlug(_ context.Context, slug string) (project.Record, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	rows, err := collect(txn.Get(tableProjects, indexSlug, slug))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	first := lo.MinBy(rows, func(a, b *row) bool { return a.ID < b.ID })
	return first.record(), nil
}

// InsertProject stores the input under the next id and returns the stored
// row. Omitted optionals are stored as null and featured as false, the
// column defaults of the SQL schema.
func (s *ProjectStore) InsertProject(_ context.Context, in project.Input) (project.Record, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	r := newRow(s.nextID, in)
	if err := txn.Insert(tableProjects, r); err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	s.nextID++
	txn.Commit()

	return r.record(), nil
}

// UpdateProject replaces every writable column of the row with the given id.
// It returns nil when no row matched.
func (s *ProjectStore) UpdateProject(_ context.Context, id int64, in project.Input) (project.Record, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableProjects, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("looking up project %d: %w", id, err)
	}
	if existing == nil {
		return nil, nil
	}

	r := newRow(id, in)
	if err := txn.Insert(tableProjects, r); err != nil {
		return nil, fmt.Errorf("updating project %d: %w", id, err)
	}
	txn.Commit()

	return r.record(), nil
}

// DeleteProject removes the row with the given id. A missing id is not an
// error.
func (s *ProjectStore) DeleteProject(_ context.Context, id int64) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(tableProjects, indexID, id); err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	txn.Commit()

	return nil
}

// Name returns the identifier used when this store is registered with a
// [ports.HealthRegistry].
func (s *ProjectStore) Name() string {
	return "memory"
}

// HealthCheck always succeeds.
func (s *ProjectStore) HealthCheck(_ context.Context) error {
	return nil
}

func newRow(id int64, in project.Input) *row {
	data := in.ReplacementRow()
	data[project.ColID] = id
	return &row{ID: id, Slug: in.Slug, Data: data}
}

// record returns a copy of the row's data that callers may mutate freely.
func (r *row) record() project.Record {
	rec := maps.Clone(r.Data)
	if tech, ok := rec[project.ColTech].([]string); ok {
		rec[project.ColTech] = slices.Clone(tech)
	}
	return rec
}

func collect(it memdb.ResultIterator, err error) ([]*row, error) {
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}

	var rows []*row
	for obj := it.Next(); obj != nil; obj = it.Next() {
		rows = append(rows, obj.(*row))
	}
	return rows, nil
}
