package dashboard_test

import (
	"testing"
	"time"

	"github.com/rpggio/estflow/internal/domain/dashboard"
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/workflow"
	"github.com/stretchr/testify/require"
)

func activeProject(id string) project.Project {
	return project.Project{UniqueID: id, Status: workflow.ProjectActive}
}

func TestComputeKPIs_OverdueCountsActiveOnly(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)

	p1 := activeProject("00001")
	p1.EstimateNeededBy = &past
	p2 := activeProject("00002")
	p3 := activeProject("00003")

	kpis := dashboard.ComputeKPIs([]project.Project{p1, p2, p3}, nil, nil, nil, nil)
	require.Equal(t, 3, kpis.TotalActive)
	require.Equal(t, 1, kpis.Overdue)
}

func TestComputeKPIs_StatusBuckets(t *testing.T) {
	p1 := activeProject("00001")
	p2 := activeProject("00002")
	p3 := activeProject("00003")

	scopes := []revision.Record{
		rec("s1", "00001", workflow.ModuleScope, workflow.ScopeCompleted, true),
		rec("s2", "00002", workflow.ModuleScope, workflow.ScopeCompleted, true),
	}
	estimates := []revision.Record{
		rec("e1", "00001", workflow.ModuleEstimate, workflow.EstimateInternalReview, true),
		rec("e2", "00002", workflow.ModuleEstimate, workflow.EstimateExternalReview, true),
	}
	ves := []revision.Record{
		rec("v1", "00003", workflow.ModuleVE, workflow.VEWaitingApproval, true),
	}

	kpis := dashboard.ComputeKPIs([]project.Project{p1, p2, p3}, scopes, estimates, ves, nil)
	require.Equal(t, 2, kpis.ScopeCompleted)
	require.Equal(t, 2, kpis.EstimatesInReview)
	require.Equal(t, 1, kpis.VEWaitingApproval)
}

func TestComputeKPIs_DoneCountsAllProjects(t *testing.T) {
	// Every other KPI restricts to Active projects; Done deliberately
	// counts the whole book, including this On Hold project.
	done := project.Project{UniqueID: "00001", Status: workflow.ProjectOnHold}
	active := activeProject("00002")

	scopes := []revision.Record{rec("s1", "00001", workflow.ModuleScope, workflow.ScopeCompleted, true)}
	estimates := []revision.Record{rec("e1", "00001", workflow.ModuleEstimate, workflow.EstimateApproved, true)}
	ves := []revision.Record{rec("v1", "00001", workflow.ModuleVE, workflow.VEFullyApproved, true)}

	kpis := dashboard.ComputeKPIs([]project.Project{done, active}, scopes, estimates, ves, nil)
	require.Equal(t, 1, kpis.Done)
	require.Equal(t, 1, kpis.TotalActive)
	require.Equal(t, 0, kpis.ScopeCompleted)
}

func TestComputeKPIs_InactiveProjectsIgnored(t *testing.T) {
	onHold := project.Project{UniqueID: "00001", Status: workflow.ProjectOnHold}
	closed := project.Project{UniqueID: "00002", Status: workflow.ProjectClosed}

	kpis := dashboard.ComputeKPIs([]project.Project{onHold, closed}, nil, nil, nil, nil)
	require.Equal(t, 0, kpis.TotalActive)
	require.Equal(t, 0, kpis.Overdue)
}

func TestSummaries_OnePerProject(t *testing.T) {
	p1 := activeProject("00001")
	p2 := project.Project{UniqueID: "00002", Status: workflow.ProjectNew}

	summaries := dashboard.Summaries([]project.Project{p1, p2}, nil, nil, nil, nil)
	require.Len(t, summaries, 2)
	require.Equal(t, "00001", summaries[0].UniqueID)
	require.Equal(t, dashboard.StepScope, summaries[0].CurrentStep)
}
