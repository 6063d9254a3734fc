package dashboard

import (
	"github.com/rpggio/estflow/internal/domain/project"
	"github.com/rpggio/estflow/internal/domain/revision"
	"github.com/rpggio/estflow/internal/domain/workflow"
)

// Step is the workflow stage a project is currently gated on.
type Step string

const (
	StepScope    Step = "Scope"
	StepEstimate Step = "Estimate"
	StepVE       Step = "VE"
	StepDone     Step = "Done"
)

// Step numbers follow the five-stage workflow, where step 1 is project
// creation itself.
const (
	StepNumberScope    = 2
	StepNumberEstimate = 3
	StepNumberVE       = 4
	StepNumberDone     = 5
)

// StepInfo describes where a project currently sits in the workflow.
// Record is the latest record of the gating module, nil when the module
// hasn't started or the project is done.
type StepInfo struct {
	Step       Step             `json:"step"`
	StepNumber int              `json:"step_number"`
	Status     workflow.Status  `json:"status"`
	Record     *revision.Record `json:"record,omitempty"`
}

// latestFor finds the latest-flagged record for a project in a
// collection. Input need not be pre-filtered.
func latestFor(records []revision.Record, projectID string) *revision.Record {
	for i := range records {
		if records[i].ProjectID == projectID && records[i].IsLatest {
			return &records[i]
		}
	}
	return nil
}

// DeriveCurrentStep computes the project's current workflow step from
// the latest record of each module. Gates are checked in order: an
// incomplete Scope wins over everything, then an unapproved Estimate,
// then an unapproved VE. A module with no records reads as not started,
// which is a normal workflow state, not an error. The function is pure:
// identical inputs always produce identical output.
func DeriveCurrentStep(proj project.Project, scopes, estimates, veRecords []revision.Record) StepInfo {
	return deriveStep(
		latestFor(scopes, proj.UniqueID),
		latestFor(estimates, proj.UniqueID),
		latestFor(veRecords, proj.UniqueID),
	)
}

func deriveStep(scope, estimate, ve *revision.Record) StepInfo {
	if scope == nil || scope.Status != workflow.ScopeCompleted {
		return StepInfo{Step: StepScope, StepNumber: StepNumberScope, Status: statusOr(scope), Record: scope}
	}
	if estimate == nil || estimate.Status != workflow.EstimateApproved {
		return StepInfo{Step: StepEstimate, StepNumber: StepNumberEstimate, Status: statusOr(estimate), Record: estimate}
	}
	if ve == nil || ve.Status != workflow.VEFullyApproved {
		return StepInfo{Step: StepVE, StepNumber: StepNumberVE, Status: statusOr(ve), Record: ve}
	}
	return StepInfo{Step: StepDone, StepNumber: StepNumberDone, Status: doneStatus}
}

// doneStatus is the derived status reported once every gate is passed.
const doneStatus workflow.Status = "Completed"

func statusOr(rec *revision.Record) workflow.Status {
	if rec == nil {
		return workflow.StatusNotStarted
	}
	return rec.Status
}
