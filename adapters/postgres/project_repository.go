package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"ecodesign/domain/core"
	"ecodesign/domain/design"
	"ecodesign/domain/project"
	"ecodesign/internal/errors"
	"ecodesign/ports"
)

// projectSchema is applied at startup; idempotent.
const projectSchema = `
CREATE TABLE IF NOT EXISTS projects (
	id          UUID PRIMARY KEY,
	constraints JSONB NOT NULL,
	designs     JSONB NOT NULL,
	ml          JSONB,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects (created_at DESC);
`

// ProjectRepositoryImpl implements ProjectRepository for PostgreSQL
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new PostgreSQL project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

// EnsureSchema creates the projects table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, projectSchema); err != nil {
		return errors.Wrap(err, "failed to create projects schema")
	}
	return nil
}

// Save stores a completed pipeline result.
func (r *ProjectRepositoryImpl) Save(ctx context.Context, record *project.Record) error {
	constraintsJSON, err := json.Marshal(record.Constraints)
	if err != nil {
		return errors.Wrap(err, "failed to encode constraints")
	}
	designsJSON, err := json.Marshal(record.Designs)
	if err != nil {
		return errors.Wrap(err, "failed to encode designs")
	}
	var mlJSON []byte
	if record.ML != nil {
		if mlJSON, err = json.Marshal(record.ML); err != nil {
			return errors.Wrap(err, "failed to encode ml enhancements")
		}
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, constraints, designs, ml, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			constraints = EXCLUDED.constraints,
			designs = EXCLUDED.designs,
			ml = EXCLUDED.ml`,
		record.ID.String(), constraintsJSON, designsJSON, mlJSON, createdAt)
	if err != nil {
		return errors.Wrap(err, "failed to save project")
	}
	return nil
}

// Get retrieves a project by ID.
func (r *ProjectRepositoryImpl) Get(ctx context.Context, id core.ProjectID) (*project.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, constraints, designs, ml, created_at
		FROM projects
		WHERE id = $1`, id.String())

	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("project")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load project")
	}
	return record, nil
}

// List returns the most recent projects, newest first.
func (r *ProjectRepositoryImpl) List(ctx context.Context, limit int) ([]*project.Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, constraints, designs, ml, created_at
		FROM projects
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	defer rows.Close()

	var records []*project.Record
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan project row")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate projects")
	}
	return records, nil
}

// Clear deletes all stored projects.
func (r *ProjectRepositoryImpl) Clear(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects`)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear projects")
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cleared projects")
	}
	return int(deleted), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*project.Record, error) {
	var (
		id              string
		constraintsJSON []byte
		designsJSON     []byte
		mlJSON          []byte
		createdAt       time.Time
	)
	if err := row.Scan(&id, &constraintsJSON, &designsJSON, &mlJSON, &createdAt); err != nil {
		return nil, err
	}

	record := &project.Record{ID: core.ProjectID(id), CreatedAt: createdAt}
	if err := json.Unmarshal(constraintsJSON, &record.Constraints); err != nil {
		return nil, err
	}
	record.Designs = []design.Design{}
	if err := json.Unmarshal(designsJSON, &record.Designs); err != nil {
		return nil, err
	}
	if len(mlJSON) > 0 {
		var ml project.Enhancements
		if err := json.Unmarshal(mlJSON, &ml); err != nil {
			return nil, err
		}
		record.ML = &ml
	}
	return record, nil
}
