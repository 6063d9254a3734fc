package dashboard_test

import (
	"testing"
	"time"

	"github.com/rpggio/estflow/internal/domain/dashboard"
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestBuildSummary_NameResolution(t *testing.T) {
	proj := project.Project{UniqueID: "00001", Owner: "u1", Estimator: "u2"}
	users := []user.User{
		{ID: "u1", Name: "Dana Oyelaran", Role: user.RoleRequestor},
		{ID: "u2", Name: "Priya Nair", Role: user.RoleEstimator},
	}

	summary := dashboard.BuildSummary(proj, nil, nil, nil, users)
	require.Equal(t, "Dana Oyelaran", summary.OwnerName)
	require.Equal(t, "Priya Nair", summary.EstimatorName)
}

func TestBuildSummary_MissingUsersDefaultNotError(t *testing.T) {
	proj := project.Project{UniqueID: "00001", Owner: "ghost", Estimator: ""}

	summary := dashboard.BuildSummary(proj, nil, nil, nil, nil)
	require.Equal(t, "Unknown", summary.OwnerName)
	require.Equal(t, "Unassigned", summary.EstimatorName)
}

func TestBuildSummary_FTPPrefersEstimate(t *testing.T) {
	proj := project.Project{UniqueID: "00001"}
	estimate := rec("e1", "00001", workflow.ModuleEstimate, workflow.EstimateInProgress, true)
	estimate.EstimatedFTP = f64(12)
	estimate.EstimatedDollarValue = f64(120000)
	ve := rec("v1", "00001", workflow.ModuleVE, workflow.VEYetToSubmit, true)
	ve.VEFTP = f64(10)
	ve.VEDollarValue = f64(95000)

	summary := dashboard.BuildSummary(proj, nil, []revision.Record{estimate}, []revision.Record{ve}, nil)
	require.Equal(t, 12.0, *summary.LatestFTP)
	require.Equal(t, 120000.0, *summary.LatestDollarValue)
}

func TestBuildSummary_FTPFallsBackToVE(t *testing.T) {
	proj := project.Project{UniqueID: "00001"}
	ve := rec("v1", "00001", workflow.ModuleVE, workflow.VEYetToSubmit, true)
	ve.VEFTP = f64(10)
	ve.VEDollarValue = f64(95000)

	summary := dashboard.BuildSummary(proj, nil, nil, []revision.Record{ve}, nil)
	require.Equal(t, 10.0, *summary.LatestFTP)
	require.Equal(t, 95000.0, *summary.LatestDollarValue)

	summary = dashboard.BuildSummary(proj, nil, nil, nil, nil)
	require.Nil(t, summary.LatestFTP)
	require.Nil(t, summary.LatestDollarValue)
}

func TestBuildSummary_Overdue(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	proj := project.Project{UniqueID: "00001", EstimateNeededBy: &past}
	summary := dashboard.BuildSummary(proj, nil, nil, nil, nil)
	require.True(t, summary.IsOverdue)

	proj.EstimateNeededBy = &future
	summary = dashboard.BuildSummary(proj, nil, nil, nil, nil)
	require.False(t, summary.IsOverdue)

	proj.EstimateNeededBy = nil
	summary = dashboard.BuildSummary(proj, nil, nil, nil, nil)
	require.False(t, summary.IsOverdue)
}

func TestBuildSummary_DoneProjectNeverOverdue(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour)
	proj := project.Project{UniqueID: "00001", EstimateNeededBy: &past}
	scopes := []revision.Record{rec("s1", "00001", workflow.ModuleScope, workflow.ScopeCompleted, true)}
	estimates := []revision.Record{rec("e1", "00001", workflow.ModuleEstimate, workflow.EstimateApproved, true)}
	ves := []revision.Record{rec("v1", "00001", workflow.ModuleVE, workflow.VEFullyApproved, true)}

	summary := dashboard.BuildSummary(proj, scopes, estimates, ves, nil)
	require.Equal(t, dashboard.StepDone, summary.CurrentStep)
	require.False(t, summary.IsOverdue)
}

func TestBuildSummary_ModuleStatuses(t *testing.T) {
	proj := project.Project{UniqueID: "00001"}
	scopes := []revision.Record{rec("s1", "00001", workflow.ModuleScope, workflow.ScopeGrooming, true)}

	summary := dashboard.BuildSummary(proj, scopes, nil, nil, nil)
	require.Equal(t, workflow.ScopeGrooming, summary.ScopeStatus)
	require.Equal(t, workflow.StatusNotStarted, summary.EstimateStatus)
	require.Equal(t, workflow.StatusNotStarted, summary.VEStatus)
	require.Equal(t, dashboard.StepScope, summary.CurrentStep)
	require.Equal(t, 2, summary.CurrentStepNumber)
}
