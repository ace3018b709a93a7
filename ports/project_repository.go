package ports

import (
	"context"

	"ecodesign/domain/core"
	"ecodesign/domain/project"
)

// ProjectRepository persists completed pipeline results keyed by an opaque
// project identifier. The core only produces the record; it never stores.
type ProjectRepository interface {
	// Save stores a completed pipeline result.
	Save(ctx context.Context, record *project.Record) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id core.ProjectID) (*project.Record, error)

	// List returns the most recent projects, newest first.
	List(ctx context.Context, limit int) ([]*project.Record, error)

	// Clear deletes all stored projects and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
