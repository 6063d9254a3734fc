package mocks

import (
	"context"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, uniqueID string) (*project.Project, error) {
	args := m.Called(ctx, uniqueID)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) TransitionStatus(ctx context.Context, proj *project.Project, entry *history.Entry) error {
	args := m.Called(ctx, proj, entry)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, uniqueID string) error {
	args := m.Called(ctx, uniqueID)
	return args.Error(0)
}

// RecordRepository is a mock for revision.Repository.
type RecordRepository struct {
	mock.Mock
}

func (m *RecordRepository) CreateVersion(ctx context.Context, rec *revision.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecordRepository) Get(ctx context.Context, module workflow.Module, id string) (*revision.Record, error) {
	args := m.Called(ctx, module, id)
	if rec, ok := args.Get(0).(*revision.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) Update(ctx context.Context, rec *revision.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecordRepository) TransitionStatus(ctx context.Context, rec *revision.Record, entry *history.Entry) error {
	args := m.Called(ctx, rec, entry)
	return args.Error(0)
}

func (m *RecordRepository) Delete(ctx context.Context, module workflow.Module, id, nextLatestID string) error {
	args := m.Called(ctx, module, id, nextLatestID)
	return args.Error(0)
}

func (m *RecordRepository) ListByProject(ctx context.Context, module workflow.Module, projectID string) ([]revision.Record, error) {
	args := m.Called(ctx, module, projectID)
	if list, ok := args.Get(0).([]revision.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) ListAll(ctx context.Context, module workflow.Module) ([]revision.Record, error) {
	args := m.Called(ctx, module)
	if list, ok := args.Get(0).([]revision.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// HistoryRepository is a mock for history.Repository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *HistoryRepository) ListByProject(ctx context.Context, projectID string) ([]history.Entry, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]history.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock user directory store.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
