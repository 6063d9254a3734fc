package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/rpggio/estflow/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name               string
	Owner              string
	Estimator          string
	Program            string
	Client             string
	EpicID             string
	Priority           string
	Notes              string
	EstimateNeededBy   *time.Time
	TargetDeliveryDate *time.Time
}

// Create creates a new project with generated identifiers and the New
// status.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	now := time.Now()
	proj := &Project{
		UniqueID:           nextUniqueID(existing),
		ProjectID:          nextProjectID(existing, now),
		Name:               req.Name,
		Owner:              req.Owner,
		Estimator:          req.Estimator,
		Program:            req.Program,
		Client:             req.Client,
		EpicID:             req.EpicID,
		Priority:           req.Priority,
		Status:             workflow.ProjectNew,
		Notes:              req.Notes,
		EstimateNeededBy:   req.EstimateNeededBy,
		TargetDeliveryDate: req.TargetDeliveryDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by its immutable unique id.
func (s *Service) Get(ctx context.Context, uniqueID string) (*Project, error) {
	proj, err := s.repo.Get(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// UpdateRequest carries mutable project fields. Nil pointers leave the
// field unchanged.
type UpdateRequest struct {
	Name               *string
	Owner              *string
	Estimator          *string
	Program            *string
	Client             *string
	EpicID             *string
	Priority           *string
	Notes              *string
	EstimateNeededBy   *time.Time
	TargetDeliveryDate *time.Time
}

// Update edits project fields. Identity and status are not touched
// here; status moves go through ChangeStatus so they land in the
// ledger.
func (s *Service) Update(ctx context.Context, uniqueID string, req UpdateRequest) (*Project, error) {
	proj, err := s.Get(ctx, uniqueID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		proj.Name = *req.Name
	}
	if req.Owner != nil {
		proj.Owner = *req.Owner
	}
	if req.Estimator != nil {
		proj.Estimator = *req.Estimator
	}
	if req.Program != nil {
		proj.Program = *req.Program
	}
	if req.Client != nil {
		proj.Client = *req.Client
	}
	if req.EpicID != nil {
		proj.EpicID = *req.EpicID
	}
	if req.Priority != nil {
		proj.Priority = *req.Priority
	}
	if req.Notes != nil {
		proj.Notes = *req.Notes
	}
	if req.EstimateNeededBy != nil {
		proj.EstimateNeededBy = req.EstimateNeededBy
	}
	if req.TargetDeliveryDate != nil {
		proj.TargetDeliveryDate = req.TargetDeliveryDate
	}
	proj.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// ChangeStatus moves a project between lifecycle statuses. Project
// statuses are unordered, so any in-enum move is allowed; the reason is
// optional. The status write and its ledger entry land in one store
// transaction, so a status change can never commit without its entry.
func (s *Service) ChangeStatus(ctx context.Context, uniqueID string, to workflow.Status, reason, changedBy string) (*Project, error) {
	proj, err := s.Get(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	if decision := workflow.ValidateTransition(workflow.ModuleProject, proj.Status, to, reason); decision.Err != nil {
		return nil, decision.Err
	}

	from := proj.Status
	proj.Status = to
	proj.UpdatedAt = time.Now()

	if strings.TrimSpace(reason) == "" {
		reason = workflow.DefaultReason(to)
	}
	entry := &history.Entry{
		ID:         history.NewID(),
		ProjectID:  proj.UniqueID,
		Module:     workflow.ModuleProject,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		ChangedBy:  changedBy,
		ChangedAt:  proj.UpdatedAt,
	}

	if err := s.repo.TransitionStatus(ctx, proj, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("transitioning project status: %w", err)
	}

	return proj, nil
}

// nextUniqueID assigns the next 5-digit immutable identity.
func nextUniqueID(existing []Project) string {
	max := 0
	for _, p := range existing {
		if n, err := strconv.Atoi(p.UniqueID); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%05d", max+1)
}

// nextProjectID assigns the next human-facing code, PRJ-<year>-<seq>,
// with the sequence scoped to the current year.
func nextProjectID(existing []Project, now time.Time) string {
	prefix := fmt.Sprintf("PRJ-%d-", now.Year())
	max := 0
	for _, p := range existing {
		rest, ok := strings.CutPrefix(p.ProjectID, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}
