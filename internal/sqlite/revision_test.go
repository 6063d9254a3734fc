package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/estflow/internal/domain/history"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/rpggio/estflow/internal/repository"
	"github.com/stretchr/testify/require"
)

func newScope(id, projectID string, version int, latest bool) *revision.Record {
	now := time.Now()
	return &revision.Record{
		ID:         id,
		ProjectID:  projectID,
		Module:     workflow.ModuleScope,
		Version:    version,
		Status:     workflow.ScopeDraft,
		IsLatest:   latest,
		ScopeTitle: "Scope " + id,
		ScopeType:  revision.ScopeTypeFunctional,
		CreatedBy:  "u1",
		UpdatedBy:  "u1",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRecordRepository_CreateVersionFlipsLatest(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")

	repo := NewRecordRepository(db)
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-a", "00001", 1, true)))
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-b", "00001", 2, true)))

	records, err := repo.ListByProject(ctx, workflow.ModuleScope, "00001")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest version first, and it alone carries the latest flag.
	require.Equal(t, "scope-b", records[0].ID)
	require.True(t, records[0].IsLatest)
	require.Equal(t, "scope-a", records[1].ID)
	require.False(t, records[1].IsLatest)
}

func TestRecordRepository_GetRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")

	repo := NewRecordRepository(db)
	ftp := 12.5
	dollars := 150000.0
	now := time.Now()
	rec := &revision.Record{
		ID:                   "est-a",
		ProjectID:            "00001",
		Module:               workflow.ModuleEstimate,
		Version:              1,
		Status:               workflow.EstimateYetToStart,
		IsLatest:             true,
		EstimateType:         revision.EstimateTypeROM,
		EstimatedFTP:         &ftp,
		EstimatedDollarValue: &dollars,
		Currency:             "USD",
		CreatedBy:            "u1",
		UpdatedBy:            "u1",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, repo.CreateVersion(ctx, rec))

	got, err := repo.Get(ctx, workflow.ModuleEstimate, "est-a")
	require.NoError(t, err)
	require.Equal(t, workflow.EstimateYetToStart, got.Status)
	require.Equal(t, 12.5, *got.EstimatedFTP)
	require.Equal(t, 150000.0, *got.EstimatedDollarValue)
	require.Nil(t, got.SubmittedDate)

	_, err = repo.Get(ctx, workflow.ModuleEstimate, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// Same id under a different module is a miss.
	_, err = repo.Get(ctx, workflow.ModuleScope, "est-a")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordRepository_TransitionStatusWritesBoth(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")

	repo := NewRecordRepository(db)
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-a", "00001", 1, true)))

	rec, err := repo.Get(ctx, workflow.ModuleScope, "scope-a")
	require.NoError(t, err)
	rec.Status = workflow.ScopeInProgress
	rec.UpdatedAt = time.Now()

	entry := &history.Entry{
		ID:         "hist-1",
		ProjectID:  "00001",
		Module:     workflow.ModuleScope,
		RecordID:   "scope-a",
		FromStatus: workflow.ScopeDraft,
		ToStatus:   workflow.ScopeInProgress,
		Reason:     "Status changed to In Progress",
		ChangedBy:  "u1",
		ChangedAt:  time.Now(),
	}
	require.NoError(t, repo.TransitionStatus(ctx, rec, entry))

	got, err := repo.Get(ctx, workflow.ModuleScope, "scope-a")
	require.NoError(t, err)
	require.Equal(t, workflow.ScopeInProgress, got.Status)

	entries, err := NewHistoryRepository(db).ListByProject(ctx, "00001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, workflow.ScopeInProgress, entries[0].ToStatus)
}

func TestRecordRepository_TransitionStatusMissingRecord(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")

	repo := NewRecordRepository(db)
	rec := newScope("ghost", "00001", 1, true)
	entry := &history.Entry{
		ID:        "hist-1",
		ProjectID: "00001",
		Module:    workflow.ModuleScope,
		RecordID:  "ghost",
		ToStatus:  workflow.ScopeInProgress,
		Reason:    "x",
		ChangedAt: time.Now(),
	}
	require.ErrorIs(t, repo.TransitionStatus(ctx, rec, entry), repository.ErrNotFound)

	// The failed transition must not leave a ledger entry behind.
	entries, err := NewHistoryRepository(db).ListByProject(ctx, "00001")
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestRecordRepository_DeletePromotesNext(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")

	repo := NewRecordRepository(db)
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-a", "00001", 1, true)))
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-b", "00001", 2, true)))

	require.NoError(t, repo.Delete(ctx, workflow.ModuleScope, "scope-b", "scope-a"))

	got, err := repo.Get(ctx, workflow.ModuleScope, "scope-a")
	require.NoError(t, err)
	require.True(t, got.IsLatest)

	require.ErrorIs(t, repo.Delete(ctx, workflow.ModuleScope, "scope-b", ""), repository.ErrNotFound)
}

func TestRecordRepository_ListAllFiltersModule(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "00001", "PRJ-2026-001")
	insertProject(t, db, "00002", "PRJ-2026-002")

	repo := NewRecordRepository(db)
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-a", "00001", 1, true)))
	require.NoError(t, repo.CreateVersion(ctx, newScope("scope-b", "00002", 1, true)))

	ve := newScope("ve-a", "00001", 1, true)
	ve.ID = "ve-a"
	ve.Module = workflow.ModuleVE
	ve.Status = workflow.VEYetToSubmit
	ve.ScopeTitle = ""
	ve.ScopeType = ""
	require.NoError(t, repo.CreateVersion(ctx, ve))

	scopes, err := repo.ListAll(ctx, workflow.ModuleScope)
	require.NoError(t, err)
	require.Len(t, scopes, 2)

	ves, err := repo.ListAll(ctx, workflow.ModuleVE)
	require.NoError(t, err)
	require.Len(t, ves, 1)
	require.Equal(t, "ve-a", ves[0].ID)
}
