package history

import "context"

// Repository provides persistence for history entries.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	ListByProject(ctx context.Context, projectID string) ([]Entry, error)
}
