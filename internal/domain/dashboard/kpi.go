package dashboard

import (
	"time"

	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/rpggio/estflow/internal/domain/workflow"
)

// KPISet holds the dashboard counters. Every counter except Done is
// restricted to Active projects; Done counts completions across the
// whole book.
type KPISet struct {
	TotalActive       int `json:"total_active"`
	ScopeCompleted    int `json:"scope_completed"`
	EstimatesInReview int `json:"estimates_in_review"`
	VEWaitingApproval int `json:"ve_waiting_approval"`
	Overdue           int `json:"overdue"`
	Done              int `json:"done"`
}

// latestIndex maps project id to its latest record, built in one pass
// over a module's collection so KPI aggregation stays linear in the
// record count.
type latestIndex map[string]*revision.Record

func indexLatest(records []revision.Record) latestIndex {
	idx := make(latestIndex)
	for i := range records {
		if records[i].IsLatest {
			idx[records[i].ProjectID] = &records[i]
		}
	}
	return idx
}

// ComputeKPIs aggregates dashboard counters over the full project
// collection.
func ComputeKPIs(projects []project.Project, scopes, estimates, veRecords []revision.Record, users []user.User) KPISet {
	scopeIdx := indexLatest(scopes)
	estimateIdx := indexLatest(estimates)
	veIdx := indexLatest(veRecords)
	dir := user.NewDirectory(users)
	now := time.Now()

	var kpis KPISet
	for _, proj := range projects {
		summary := buildSummary(proj, scopeIdx[proj.UniqueID], estimateIdx[proj.UniqueID], veIdx[proj.UniqueID], dir, now)

		if summary.CurrentStep == StepDone {
			kpis.Done++
		}
		if proj.Status != workflow.ProjectActive {
			continue
		}

		kpis.TotalActive++
		if summary.ScopeStatus == workflow.ScopeCompleted {
			kpis.ScopeCompleted++
		}
		if summary.EstimateStatus == workflow.EstimateInternalReview ||
			summary.EstimateStatus == workflow.EstimateExternalReview {
			kpis.EstimatesInReview++
		}
		if summary.VEStatus == workflow.VEWaitingApproval {
			kpis.VEWaitingApproval++
		}
		if summary.IsOverdue {
			kpis.Overdue++
		}
	}
	return kpis
}

// Summaries builds the dashboard rows for every project using the same
// single-pass indexes as ComputeKPIs.
func Summaries(projects []project.Project, scopes, estimates, veRecords []revision.Record, users []user.User) []ProjectSummary {
	scopeIdx := indexLatest(scopes)
	estimateIdx := indexLatest(estimates)
	veIdx := indexLatest(veRecords)
	dir := user.NewDirectory(users)
	now := time.Now()

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, proj := range projects {
		summaries = append(summaries, buildSummary(proj, scopeIdx[proj.UniqueID], estimateIdx[proj.UniqueID], veIdx[proj.UniqueID], dir, now))
	}
	return summaries
}
