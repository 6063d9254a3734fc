package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	unique_id, project_id, name, owner, estimator, program, client,
	epic_id, priority, status, notes, estimate_needed_by,
	target_delivery_date, created_at, updated_at
`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.UniqueID,
		proj.ProjectID,
		proj.Name,
		proj.Owner,
		proj.Estimator,
		proj.Program,
		proj.Client,
		proj.EpicID,
		proj.Priority,
		proj.Status,
		proj.Notes,
		proj.EstimateNeededBy,
		proj.TargetDeliveryDate,
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by its immutable unique id
func (r *ProjectRepository) Get(ctx context.Context, uniqueID string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE unique_id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, uniqueID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List returns all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update overwrites a project's mutable fields
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, owner = ?, estimator = ?, program = ?, client = ?,
		    epic_id = ?, priority = ?, status = ?, notes = ?,
		    estimate_needed_by = ?, target_delivery_date = ?, updated_at = ?
		WHERE unique_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Owner,
		proj.Estimator,
		proj.Program,
		proj.Client,
		proj.EpicID,
		proj.Priority,
		proj.Status,
		proj.Notes,
		proj.EstimateNeededBy,
		proj.TargetDeliveryDate,
		proj.UpdatedAt,
		proj.UniqueID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// TransitionStatus writes the project's new status and appends the
// history entry in a single transaction, so a status change can never
// land without its ledger entry.
func (r *ProjectRepository) TransitionStatus(ctx context.Context, proj *project.Project, entry *history.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE unique_id = ?`,
		proj.Status,
		proj.UpdatedAt,
		proj.UniqueID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO status_history (id, project_id, module, record_id, from_status, to_status, reason, changed_by, changed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ProjectID,
		entry.Module,
		entry.RecordID,
		entry.FromStatus,
		entry.ToStatus,
		entry.Reason,
		entry.ChangedBy,
		entry.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, uniqueID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE unique_id = ?`, uniqueID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var neededBy, delivery sql.NullTime
	err := row.Scan(
		&proj.UniqueID,
		&proj.ProjectID,
		&proj.Name,
		&proj.Owner,
		&proj.Estimator,
		&proj.Program,
		&proj.Client,
		&proj.EpicID,
		&proj.Priority,
		&proj.Status,
		&proj.Notes,
		&neededBy,
		&delivery,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if neededBy.Valid {
		proj.EstimateNeededBy = &neededBy.Time
	}
	if delivery.Valid {
		proj.TargetDeliveryDate = &delivery.Time
	}
	return &proj, nil
}
