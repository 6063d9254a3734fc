package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/repository"
)

// HistoryRepository implements history.Repository for SQLite
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts a history entry. The ledger is append-only: there is
// no update or delete path.
func (r *HistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	query := `
		INSERT INTO status_history (id, project_id, module, record_id, from_status, to_status, reason, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
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
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// ListByProject returns a project's transitions, most recent first
func (r *HistoryRepository) ListByProject(ctx context.Context, projectID string) ([]history.Entry, error) {
	query := `
		SELECT id, project_id, module, record_id, from_status, to_status, reason, changed_by, changed_at
		FROM status_history
		WHERE project_id = ?
		ORDER BY changed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var entry history.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.Module,
			&entry.RecordID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Reason,
			&entry.ChangedBy,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return entries, nil
}
