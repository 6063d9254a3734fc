package revision

import (
	"context"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/workflow"
)

// Repository provides persistence for versioned records.
type Repository interface {
	// CreateVersion clears the latest flag on the project's existing
	// records in the module and inserts rec, atomically.
	CreateVersion(ctx context.Context, rec *Record) error
	Get(ctx context.Context, module workflow.Module, id string) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	// TransitionStatus writes the record's new status and appends the
	// history entry in a single transaction.
	TransitionStatus(ctx context.Context, rec *Record, entry *history.Entry) error
	// Delete removes a record and, when it was latest, promotes
	// nextLatestID (empty when no record remains), atomically.
	Delete(ctx context.Context, module workflow.Module, id, nextLatestID string) error
	ListByProject(ctx context.Context, module workflow.Module, projectID string) ([]Record, error)
	ListAll(ctx context.Context, module workflow.Module) ([]Record, error)
}
