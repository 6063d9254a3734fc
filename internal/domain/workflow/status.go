package workflow

// Module identifies which part of the estimate workflow a status or
// record belongs to.
type Module string

const (
	ModuleProject  Module = "Project"
	ModuleScope    Module = "Scope"
	ModuleEstimate Module = "Estimate"
	ModuleVE       Module = "VE"
)

// Status is a lifecycle status within a module.
type Status string

// Project statuses. Unordered: a project moves between these freely.
const (
	ProjectNew    Status = "New"
	ProjectActive Status = "Active"
	ProjectOnHold Status = "On Hold"
	ProjectClosed Status = "Closed"
)

// Scope statuses, in workflow order.
const (
	ScopeDraft      Status = "Draft"
	ScopeInProgress Status = "In Progress"
	ScopeGrooming   Status = "Grooming"
	ScopeCompleted  Status = "Completed"
)

// Estimate statuses, in workflow order.
const (
	EstimateYetToStart     Status = "Yet to Start"
	EstimateInProgress     Status = "In Progress"
	EstimateInternalReview Status = "Sent for Internal Review"
	EstimateExternalReview Status = "Sent for External Review"
	EstimateApproved       Status = "Approved"
)

// VE statuses, in workflow order.
const (
	VEYetToSubmit     Status = "Yet to Submit"
	VESubmittedInEDR  Status = "Estimate Submitted in EDR"
	VELoadedInTool    Status = "Estimate loaded in VE tool"
	VEWaitingApproval Status = "Waiting for Approval"
	VEFullyApproved   Status = "Estimate Fully Approved"
)

// StatusNotStarted is the derived status reported for a module with no
// records yet. It is never stored.
const StatusNotStarted Status = "Not Started"

var statusOrder = map[Module][]Status{
	ModuleProject:  {ProjectNew, ProjectActive, ProjectOnHold, ProjectClosed},
	ModuleScope:    {ScopeDraft, ScopeInProgress, ScopeGrooming, ScopeCompleted},
	ModuleEstimate: {EstimateYetToStart, EstimateInProgress, EstimateInternalReview, EstimateExternalReview, EstimateApproved},
	ModuleVE:       {VEYetToSubmit, VESubmittedInEDR, VELoadedInTool, VEWaitingApproval, VEFullyApproved},
}

// statusOrdinals maps each status to its position in the module's
// lifecycle. Position is looked up here rather than by scanning the
// ordered slice so that reordering a declaration cannot silently change
// transition semantics.
var statusOrdinals = buildOrdinals()

func buildOrdinals() map[Module]map[Status]int {
	ordinals := make(map[Module]map[Status]int, len(statusOrder))
	for module, statuses := range statusOrder {
		m := make(map[Status]int, len(statuses))
		for i, s := range statuses {
			m[s] = i
		}
		ordinals[module] = m
	}
	return ordinals
}

// Statuses returns the ordered status list for a module.
func Statuses(module Module) []Status {
	return statusOrder[module]
}

// Ordinal returns the lifecycle position of a status within a module.
// The second return is false when the status is not part of the
// module's enum.
func Ordinal(module Module, status Status) (int, bool) {
	ordinals, ok := statusOrdinals[module]
	if !ok {
		return 0, false
	}
	pos, ok := ordinals[status]
	return pos, ok
}

// ValidStatus reports whether status belongs to the module's enum.
func ValidStatus(module Module, status Status) bool {
	_, ok := Ordinal(module, status)
	return ok
}

// InitialStatus returns the default status assigned to a new record in
// the module.
func InitialStatus(module Module) Status {
	switch module {
	case ModuleProject:
		return ProjectNew
	case ModuleScope:
		return ScopeDraft
	case ModuleEstimate:
		return EstimateYetToStart
	case ModuleVE:
		return VEYetToSubmit
	}
	return ""
}
