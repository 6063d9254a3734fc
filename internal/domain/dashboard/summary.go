package dashboard

import (
	"time"

	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/rpggio/estflow/internal/domain/workflow"
)

// ProjectSummary is the dashboard row for a project: the project itself
// plus derived step, per-module statuses, resolved names, latest
// monetary figures, and overdue state.
type ProjectSummary struct {
	project.Project

	CurrentStep       Step            `json:"current_step"`
	CurrentStepNumber int             `json:"current_step_number"`
	CurrentStepStatus workflow.Status `json:"current_step_status"`

	ScopeStatus    workflow.Status `json:"scope_status"`
	EstimateStatus workflow.Status `json:"estimate_status"`
	VEStatus       workflow.Status `json:"ve_status"`

	LatestFTP         *float64 `json:"latest_ftp,omitempty"`
	LatestDollarValue *float64 `json:"latest_dollar_value,omitempty"`

	OwnerName     string `json:"owner_name"`
	EstimatorName string `json:"estimator_name"`
	IsOverdue     bool   `json:"is_overdue"`
}

// BuildSummary computes a project's dashboard summary. Missing users
// resolve to "Unknown" (owner) or "Unassigned" (estimator); missing
// records degrade to Not Started. Overdue is evaluated against the
// clock at call time, never cached, since a project crosses its
// estimateNeededBy date without any write happening.
func BuildSummary(proj project.Project, scopes, estimates, veRecords []revision.Record, users []user.User) ProjectSummary {
	return buildSummary(
		proj,
		latestFor(scopes, proj.UniqueID),
		latestFor(estimates, proj.UniqueID),
		latestFor(veRecords, proj.UniqueID),
		user.NewDirectory(users),
		time.Now(),
	)
}

func buildSummary(proj project.Project, scope, estimate, ve *revision.Record, dir user.Directory, now time.Time) ProjectSummary {
	step := deriveStep(scope, estimate, ve)

	var ftp, dollars *float64
	if estimate != nil && estimate.EstimatedFTP != nil {
		ftp = estimate.EstimatedFTP
	} else if ve != nil {
		ftp = ve.VEFTP
	}
	if estimate != nil && estimate.EstimatedDollarValue != nil {
		dollars = estimate.EstimatedDollarValue
	} else if ve != nil {
		dollars = ve.VEDollarValue
	}

	overdue := proj.EstimateNeededBy != nil &&
		proj.EstimateNeededBy.Before(now) &&
		step.Step != StepDone

	return ProjectSummary{
		Project: proj,

		CurrentStep:       step.Step,
		CurrentStepNumber: step.StepNumber,
		CurrentStepStatus: step.Status,

		ScopeStatus:    statusOr(scope),
		EstimateStatus: statusOr(estimate),
		VEStatus:       statusOr(ve),

		LatestFTP:         ftp,
		LatestDollarValue: dollars,

		OwnerName:     dir.NameOr(proj.Owner, "Unknown"),
		EstimatorName: dir.NameOr(proj.Estimator, "Unassigned"),
		IsOverdue:     overdue,
	}
}
