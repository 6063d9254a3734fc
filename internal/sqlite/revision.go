package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/rpggio/estflow/internal/repository"
)

// RecordRepository implements revision.Repository for SQLite
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

const revisionColumns = `
	id, project_id, module, version, status, is_latest,
	scope_title, scope_type, artifact_link,
	estimate_type, estimated_ftp, estimated_dollar_value, currency,
	ve_tool_reference, ve_ftp, ve_dollar_value,
	comments, submitted_date, approved_date,
	created_by, updated_by, created_at, updated_at
`

// CreateVersion clears the latest flag on the project's existing
// records in the module and inserts the new record, in one transaction.
func (r *RecordRepository) CreateVersion(ctx context.Context, rec *revision.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE revisions SET is_latest = 0 WHERE project_id = ? AND module = ?`,
		rec.ProjectID, rec.Module)
	if err != nil {
		return fmt.Errorf("failed to clear latest flags: %w", err)
	}

	query := `
		INSERT INTO revisions (` + revisionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		rec.ID,
		rec.ProjectID,
		rec.Module,
		rec.Version,
		rec.Status,
		rec.IsLatest,
		rec.ScopeTitle,
		rec.ScopeType,
		rec.ArtifactLink,
		rec.EstimateType,
		rec.EstimatedFTP,
		rec.EstimatedDollarValue,
		rec.Currency,
		rec.VEToolReference,
		rec.VEFTP,
		rec.VEDollarValue,
		rec.Comments,
		rec.SubmittedDate,
		rec.ApprovedDate,
		rec.CreatedBy,
		rec.UpdatedBy,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicateLatest
		}
		return fmt.Errorf("failed to insert revision: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a record by module and id
func (r *RecordRepository) Get(ctx context.Context, module workflow.Module, id string) (*revision.Record, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions WHERE id = ? AND module = ?`

	rec, err := scanRevision(r.db.QueryRowContext(ctx, query, id, module))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get revision: %w", err)
	}
	return rec, nil
}

// Update overwrites a record's payload fields
func (r *RecordRepository) Update(ctx context.Context, rec *revision.Record) error {
	query := `
		UPDATE revisions
		SET status = ?, scope_title = ?, scope_type = ?, artifact_link = ?,
		    estimate_type = ?, estimated_ftp = ?, estimated_dollar_value = ?, currency = ?,
		    ve_tool_reference = ?, ve_ftp = ?, ve_dollar_value = ?,
		    comments = ?, submitted_date = ?, approved_date = ?,
		    updated_by = ?, updated_at = ?
		WHERE id = ? AND module = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		rec.Status,
		rec.ScopeTitle,
		rec.ScopeType,
		rec.ArtifactLink,
		rec.EstimateType,
		rec.EstimatedFTP,
		rec.EstimatedDollarValue,
		rec.Currency,
		rec.VEToolReference,
		rec.VEFTP,
		rec.VEDollarValue,
		rec.Comments,
		rec.SubmittedDate,
		rec.ApprovedDate,
		rec.UpdatedBy,
		rec.UpdatedAt,
		rec.ID,
		rec.Module,
	)
	if err != nil {
		return fmt.Errorf("failed to update revision: %w", err)
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

// TransitionStatus writes the record's new status and appends the
// history entry in a single transaction, so a status change can never
// land without its ledger entry.
func (r *RecordRepository) TransitionStatus(ctx context.Context, rec *revision.Record, entry *history.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE revisions
		 SET status = ?, submitted_date = ?, approved_date = ?, updated_by = ?, updated_at = ?
		 WHERE id = ? AND module = ?`,
		rec.Status,
		rec.SubmittedDate,
		rec.ApprovedDate,
		rec.UpdatedBy,
		rec.UpdatedAt,
		rec.ID,
		rec.Module,
	)
	if err != nil {
		return fmt.Errorf("failed to update revision status: %w", err)
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

// Delete removes a record and promotes nextLatestID (when non-empty) in
// one transaction.
func (r *RecordRepository) Delete(ctx context.Context, module workflow.Module, id, nextLatestID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM revisions WHERE id = ? AND module = ?`, id, module)
	if err != nil {
		return fmt.Errorf("failed to delete revision: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if nextLatestID != "" {
		_, err = tx.ExecContext(ctx,
			`UPDATE revisions SET is_latest = 1 WHERE id = ? AND module = ?`,
			nextLatestID, module)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicateLatest
			}
			return fmt.Errorf("failed to promote next latest: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByProject returns a project's versions for a module, newest
// version first
func (r *RecordRepository) ListByProject(ctx context.Context, module workflow.Module, projectID string) ([]revision.Record, error) {
	query := `
		SELECT ` + revisionColumns + `
		FROM revisions
		WHERE project_id = ? AND module = ?
		ORDER BY version DESC
	`
	return r.queryRecords(ctx, query, projectID, module)
}

// ListAll returns every record in a module
func (r *RecordRepository) ListAll(ctx context.Context, module workflow.Module) ([]revision.Record, error) {
	query := `
		SELECT ` + revisionColumns + `
		FROM revisions
		WHERE module = ?
		ORDER BY project_id, version DESC
	`
	return r.queryRecords(ctx, query, module)
}

func (r *RecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]revision.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	defer rows.Close()

	var records []revision.Record
	for rows.Next() {
		rec, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		records = append(records, *rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revision rows: %w", err)
	}
	return records, nil
}

func scanRevision(row rowScanner) (*revision.Record, error) {
	var rec revision.Record
	var estimatedFTP, estimatedDollar, veFTP, veDollar sql.NullFloat64
	var submitted, approved sql.NullTime
	err := row.Scan(
		&rec.ID,
		&rec.ProjectID,
		&rec.Module,
		&rec.Version,
		&rec.Status,
		&rec.IsLatest,
		&rec.ScopeTitle,
		&rec.ScopeType,
		&rec.ArtifactLink,
		&rec.EstimateType,
		&estimatedFTP,
		&estimatedDollar,
		&rec.Currency,
		&rec.VEToolReference,
		&veFTP,
		&veDollar,
		&rec.Comments,
		&submitted,
		&approved,
		&rec.CreatedBy,
		&rec.UpdatedBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if estimatedFTP.Valid {
		rec.EstimatedFTP = &estimatedFTP.Float64
	}
	if estimatedDollar.Valid {
		rec.EstimatedDollarValue = &estimatedDollar.Float64
	}
	if veFTP.Valid {
		rec.VEFTP = &veFTP.Float64
	}
	if veDollar.Valid {
		rec.VEDollarValue = &veDollar.Float64
	}
	if submitted.Valid {
		rec.SubmittedDate = &submitted.Time
	}
	if approved.Valid {
		rec.ApprovedDate = &approved.Time
	}
	return &rec, nil
}
