package project

import (
	"context"

	"github.com/rpggio/estflow/internal/domain/history"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, uniqueID string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
	// TransitionStatus writes the project's new status and appends the
	// history entry in a single transaction.
	TransitionStatus(ctx context.Context, proj *Project, entry *history.Entry) error
	Delete(ctx context.Context, uniqueID string) error
}
