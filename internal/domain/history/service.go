package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a ledger entry id.
func NewID() string {
	return "hist-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Service handles status-history ledger operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new history service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Append records a status transition, filling id and timestamp when
// missing.
func (s *Service) Append(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.ProjectID == "" || entry.Module == "" || entry.ToStatus == "" {
		return ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = NewID()
	}
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	return nil
}

// ListByProject returns a project's transitions, most recent first.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Entry, error) {
	return s.repo.ListByProject(ctx, projectID)
}
