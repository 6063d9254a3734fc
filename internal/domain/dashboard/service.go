package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/rpggio/estflow/internal/domain/workflow"
)

// ProjectRepository lists projects for aggregation.
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
}

// RecordRepository lists versioned records per module.
type RecordRepository interface {
	ListAll(ctx context.Context, module workflow.Module) ([]revision.Record, error)
}

// UserRepository lists directory users for name resolution.
type UserRepository interface {
	List(ctx context.Context) ([]user.User, error)
}

// Service loads the collections once per call and applies the pure
// aggregation functions. Reads take no locks; the derivation works on
// the snapshot it loaded.
type Service struct {
	projects ProjectRepository
	records  RecordRepository
	users    UserRepository
	logger   *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(projects ProjectRepository, records RecordRepository, users UserRepository, logger *slog.Logger) *Service {
	return &Service{projects: projects, records: records, users: users, logger: logger}
}

type collections struct {
	projects  []project.Project
	scopes    []revision.Record
	estimates []revision.Record
	veRecords []revision.Record
	users     []user.User
}

func (s *Service) load(ctx context.Context) (collections, error) {
	var c collections
	var err error
	if c.projects, err = s.projects.List(ctx); err != nil {
		return c, fmt.Errorf("listing projects: %w", err)
	}
	if c.scopes, err = s.records.ListAll(ctx, workflow.ModuleScope); err != nil {
		return c, fmt.Errorf("listing scopes: %w", err)
	}
	if c.estimates, err = s.records.ListAll(ctx, workflow.ModuleEstimate); err != nil {
		return c, fmt.Errorf("listing estimates: %w", err)
	}
	if c.veRecords, err = s.records.ListAll(ctx, workflow.ModuleVE); err != nil {
		return c, fmt.Errorf("listing ve records: %w", err)
	}
	if c.users, err = s.users.List(ctx); err != nil {
		return c, fmt.Errorf("listing users: %w", err)
	}
	return c, nil
}

// KPIs computes the dashboard counters from current store state.
func (s *Service) KPIs(ctx context.Context) (KPISet, error) {
	c, err := s.load(ctx)
	if err != nil {
		return KPISet{}, err
	}
	return ComputeKPIs(c.projects, c.scopes, c.estimates, c.veRecords, c.users), nil
}

// ProjectSummaries builds a dashboard row per project.
func (s *Service) ProjectSummaries(ctx context.Context) ([]ProjectSummary, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Summaries(c.projects, c.scopes, c.estimates, c.veRecords, c.users), nil
}

// CurrentStep derives a single project's workflow position.
func (s *Service) CurrentStep(ctx context.Context, proj project.Project) (StepInfo, error) {
	c, err := s.load(ctx)
	if err != nil {
		return StepInfo{}, err
	}
	return DeriveCurrentStep(proj, c.scopes, c.estimates, c.veRecords), nil
}
