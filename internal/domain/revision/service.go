package revision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/rpggio/estflow/internal/repository"
)

var idPrefixes = map[workflow.Module]string{
	workflow.ModuleScope:    "scope",
	workflow.ModuleEstimate: "est",
	workflow.ModuleVE:       "ve",
}

func newID(module workflow.Module) string {
	return idPrefixes[module] + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Service handles versioned record operations. Writes for the same
// (project, module) pair are serialized so concurrent creates cannot
// compute the same next version or leave two records marked latest.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new revision service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lock(projectID string, module workflow.Module) func() {
	key := projectID + "|" + string(module)
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// CreateRequest describes a new version of a module record.
type CreateRequest struct {
	ProjectID string
	Module    workflow.Module
	Status    workflow.Status
	ActorID   string

	ScopeTitle   string
	ScopeType    string
	ArtifactLink string

	EstimateType         string
	EstimatedFTP         *float64
	EstimatedDollarValue *float64
	Currency             string

	VEToolReference string
	VEFTP           *float64
	VEDollarValue   *float64

	Comments string
}

// CreateVersion adds a new version for the project's module. Existing
// records lose their latest flag, the version is max(existing)+1, and
// the new record starts in the module's initial status unless one is
// supplied.
func (s *Service) CreateVersion(ctx context.Context, req CreateRequest) (*Record, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}
	if _, ok := idPrefixes[req.Module]; !ok {
		return nil, ErrInvalidModule
	}

	status := req.Status
	if status == "" {
		status = workflow.InitialStatus(req.Module)
	}
	if !workflow.ValidStatus(req.Module, status) {
		return nil, workflow.ErrInvalidStatus
	}

	unlock := s.lock(req.ProjectID, req.Module)
	defer unlock()

	existing, err := s.repo.ListByProject(ctx, req.Module, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing existing versions: %w", err)
	}
	version := 0
	for _, rec := range existing {
		if rec.Version > version {
			version = rec.Version
		}
	}

	now := time.Now()
	rec := &Record{
		ID:        newID(req.Module),
		ProjectID: req.ProjectID,
		Module:    req.Module,
		Version:   version + 1,
		Status:    status,
		IsLatest:  true,

		ScopeTitle:   req.ScopeTitle,
		ScopeType:    req.ScopeType,
		ArtifactLink: req.ArtifactLink,

		EstimateType:         req.EstimateType,
		EstimatedFTP:         req.EstimatedFTP,
		EstimatedDollarValue: req.EstimatedDollarValue,
		Currency:             req.Currency,

		VEToolReference: req.VEToolReference,
		VEFTP:           req.VEFTP,
		VEDollarValue:   req.VEDollarValue,

		Comments:  req.Comments,
		CreatedBy: req.ActorID,
		UpdatedBy: req.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rec.Module == workflow.ModuleEstimate && rec.Currency == "" {
		rec.Currency = "USD"
	}

	if err := s.repo.CreateVersion(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating version: %w", err)
	}

	return rec, nil
}

// Get returns a record by id.
func (s *Service) Get(ctx context.Context, module workflow.Module, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, module, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return rec, nil
}

// ListByProject returns the project's versions for a module.
func (s *Service) ListByProject(ctx context.Context, module workflow.Module, projectID string) ([]Record, error) {
	return s.repo.ListByProject(ctx, module, projectID)
}

// TransitionRequest describes a status change on a record.
type TransitionRequest struct {
	Module    workflow.Module
	ID        string
	ToStatus  workflow.Status
	Reason    string
	ChangedBy string
}

// ChangeStatus validates the transition against the module's lifecycle
// rules and, when allowed, writes the new status together with its
// ledger entry in one transaction. A status update without a matching
// history entry never hits the store.
func (s *Service) ChangeStatus(ctx context.Context, req TransitionRequest) (*Record, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, req.Module, req.ID)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(current.ProjectID, req.Module)
	defer unlock()

	// Re-read under the lock: a racing transition may have committed
	// between the first read and acquiring the lock, and validation
	// must run against the committed status.
	current, err = s.Get(ctx, req.Module, req.ID)
	if err != nil {
		return nil, err
	}

	decision := workflow.ValidateTransition(req.Module, current.Status, req.ToStatus, req.Reason)
	if decision.Err != nil {
		return nil, decision.Err
	}

	now := time.Now()
	updated := *current
	updated.Status = req.ToStatus
	updated.UpdatedBy = req.ChangedBy
	updated.UpdatedAt = now
	stampDates(&updated, now)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = workflow.DefaultReason(req.ToStatus)
	}

	entry := &history.Entry{
		ID:         history.NewID(),
		ProjectID:  current.ProjectID,
		Module:     req.Module,
		RecordID:   current.ID,
		FromStatus: current.Status,
		ToStatus:   req.ToStatus,
		Reason:     reason,
		ChangedBy:  req.ChangedBy,
		ChangedAt:  now,
	}

	if err := s.repo.TransitionStatus(ctx, &updated, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("transitioning record: %w", err)
	}

	return &updated, nil
}

// stampDates mirrors the submitted/approved date bookkeeping: the first
// move into review (Estimate) or EDR submission (VE) stamps
// SubmittedDate, reaching the terminal approval stamps ApprovedDate.
func stampDates(rec *Record, now time.Time) {
	switch rec.Module {
	case workflow.ModuleEstimate:
		if rec.Status == workflow.EstimateInternalReview && rec.SubmittedDate == nil {
			rec.SubmittedDate = &now
		}
		if rec.Status == workflow.EstimateApproved {
			rec.ApprovedDate = &now
		}
	case workflow.ModuleVE:
		if rec.Status == workflow.VESubmittedInEDR && rec.SubmittedDate == nil {
			rec.SubmittedDate = &now
		}
		if rec.Status == workflow.VEFullyApproved {
			rec.ApprovedDate = &now
		}
	}
}

// UpdateRequest carries editable payload fields. Nil or empty values
// leave the field unchanged, except pointers which overwrite when set.
type UpdateRequest struct {
	Module  workflow.Module
	ID      string
	ActorID string

	ScopeTitle   *string
	ScopeType    *string
	ArtifactLink *string

	EstimateType         *string
	EstimatedFTP         *float64
	EstimatedDollarValue *float64
	Currency             *string

	VEToolReference *string
	VEFTP           *float64
	VEDollarValue   *float64

	Comments *string
}

// Update edits a record's payload without touching version, latest
// flag, or status.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Record, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, req.Module, req.ID)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(current.ProjectID, req.Module)
	defer unlock()

	// Re-read under the lock so the edit applies to the committed
	// payload, not one a racing update already replaced.
	current, err = s.Get(ctx, req.Module, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.ScopeTitle != nil {
		updated.ScopeTitle = *req.ScopeTitle
	}
	if req.ScopeType != nil {
		updated.ScopeType = *req.ScopeType
	}
	if req.ArtifactLink != nil {
		updated.ArtifactLink = *req.ArtifactLink
	}
	if req.EstimateType != nil {
		updated.EstimateType = *req.EstimateType
	}
	if req.EstimatedFTP != nil {
		updated.EstimatedFTP = req.EstimatedFTP
	}
	if req.EstimatedDollarValue != nil {
		updated.EstimatedDollarValue = req.EstimatedDollarValue
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.VEToolReference != nil {
		updated.VEToolReference = *req.VEToolReference
	}
	if req.VEFTP != nil {
		updated.VEFTP = req.VEFTP
	}
	if req.VEDollarValue != nil {
		updated.VEDollarValue = req.VEDollarValue
	}
	if req.Comments != nil {
		updated.Comments = *req.Comments
	}
	updated.UpdatedBy = req.ActorID
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("updating record: %w", err)
	}
	return &updated, nil
}

// Delete removes a record. When the deleted record was latest, the
// remaining record with the highest version is promoted for Scope and
// Estimate; VE promotes the most recently created record instead, since
// VE submissions can arrive out of version order.
func (s *Service) Delete(ctx context.Context, module workflow.Module, id string) error {
	current, err := s.Get(ctx, module, id)
	if err != nil {
		return err
	}

	unlock := s.lock(current.ProjectID, module)
	defer unlock()

	// Re-read under the lock so the latest flag reflects writes that
	// raced the first read.
	current, err = s.Get(ctx, module, id)
	if err != nil {
		return err
	}

	nextLatestID := ""
	if current.IsLatest {
		siblings, err := s.repo.ListByProject(ctx, module, current.ProjectID)
		if err != nil {
			return fmt.Errorf("listing versions: %w", err)
		}
		if next := nextLatest(module, siblings, current.ID); next != nil {
			nextLatestID = next.ID
		}
	}

	if err := s.repo.Delete(ctx, module, id, nextLatestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

func nextLatest(module workflow.Module, siblings []Record, deletedID string) *Record {
	var next *Record
	for i := range siblings {
		rec := &siblings[i]
		if rec.ID == deletedID {
			continue
		}
		if next == nil {
			next = rec
			continue
		}
		if module == workflow.ModuleVE {
			if rec.CreatedAt.After(next.CreatedAt) {
				next = rec
			}
		} else if rec.Version > next.Version {
			next = rec
		}
	}
	return next
}
