package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/rpggio/estflow/internal/repository"
	"github.com/stretchr/testify/require"
)

func testProject(uniqueID, projectID string) *project.Project {
	now := time.Now()
	return &project.Project{
		UniqueID:  uniqueID,
		ProjectID: projectID,
		Name:      "Checkout revamp",
		Owner:     "u1",
		Estimator: "u2",
		Program:   "Commerce",
		Client:    "Acme",
		Priority:  project.PriorityHigh,
		Status:    workflow.ProjectNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	neededBy := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	proj := testProject("00001", "PRJ-2026-001")
	proj.EstimateNeededBy = &neededBy

	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "00001")
	require.NoError(t, err)
	require.Equal(t, "PRJ-2026-001", got.ProjectID)
	require.Equal(t, "Checkout revamp", got.Name)
	require.Equal(t, project.PriorityHigh, got.Priority)
	require.NotNil(t, got.EstimateNeededBy)
	require.True(t, got.EstimateNeededBy.Equal(neededBy))
	require.Nil(t, got.TargetDeliveryDate)

	_, err = repo.Get(ctx, "99999")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	older := testProject("00001", "PRJ-2026-001")
	older.CreatedAt = time.Now().Add(-time.Hour)
	older.UpdatedAt = older.CreatedAt
	newer := testProject("00002", "PRJ-2026-002")

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "00002", projects[0].UniqueID)
	require.Equal(t, "00001", projects[1].UniqueID)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	proj := testProject("00001", "PRJ-2026-001")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Checkout revamp phase 2"
	proj.Status = workflow.ProjectActive
	proj.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.Get(ctx, "00001")
	require.NoError(t, err)
	require.Equal(t, "Checkout revamp phase 2", got.Name)
	require.Equal(t, workflow.ProjectActive, got.Status)

	missing := testProject("99999", "PRJ-2026-999")
	require.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestProjectRepository_TransitionStatusWritesBoth(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	proj := testProject("00001", "PRJ-2026-001")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Status = workflow.ProjectActive
	proj.UpdatedAt = time.Now()
	entry := &history.Entry{
		ID:         "hist-1",
		ProjectID:  "00001",
		Module:     workflow.ModuleProject,
		FromStatus: workflow.ProjectNew,
		ToStatus:   workflow.ProjectActive,
		Reason:     "Status changed to Active",
		ChangedBy:  "u1",
		ChangedAt:  time.Now(),
	}
	require.NoError(t, repo.TransitionStatus(ctx, proj, entry))

	got, err := repo.Get(ctx, "00001")
	require.NoError(t, err)
	require.Equal(t, workflow.ProjectActive, got.Status)

	entries, err := NewHistoryRepository(db).ListByProject(ctx, "00001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, workflow.ProjectActive, entries[0].ToStatus)
	require.Empty(t, entries[0].RecordID)
}

func TestProjectRepository_TransitionStatusMissingProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	ghost := testProject("00009", "PRJ-2026-009")
	ghost.Status = workflow.ProjectActive
	entry := &history.Entry{
		ID:        "hist-1",
		ProjectID: "00009",
		Module:    workflow.ModuleProject,
		ToStatus:  workflow.ProjectActive,
		Reason:    "x",
		ChangedAt: time.Now(),
	}
	require.ErrorIs(t, repo.TransitionStatus(ctx, ghost, entry), repository.ErrNotFound)

	// The failed transition must not leave a ledger entry behind.
	entries, err := NewHistoryRepository(db).ListByProject(ctx, "00009")
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestProjectRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	require.NoError(t, repo.Create(ctx, testProject("00001", "PRJ-2026-001")))
	require.NoError(t, repo.Delete(ctx, "00001"))

	_, err := repo.Get(ctx, "00001")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "00001"), repository.ErrNotFound)
}
