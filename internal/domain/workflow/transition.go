package workflow

import (
	"fmt"
	"strings"
)

// Decision is the outcome of validating a status transition.
type Decision struct {
	Allowed        bool
	RequiresReason bool
	Err            error
}

// DefaultReason is the history reason used when the caller supplies
// none on an allowed transition.
func DefaultReason(to Status) string {
	return fmt.Sprintf("Status changed to %s", to)
}

// ValidateTransition checks whether a status change is allowed for the
// module's lifecycle rules.
//
// Scope and Estimate block backward moves unless a reason is given.
// Estimate additionally requires a justification when jumping from
// internal review straight to Approved, skipping external review. VE
// carries no backward rule at all: its submissions move freely and the
// reason stays optional free text. Project statuses are unordered, so
// every in-enum move is allowed.
func ValidateTransition(module Module, from, to Status, reason string) Decision {
	if !ValidStatus(module, from) || !ValidStatus(module, to) {
		return Decision{Err: ErrInvalidStatus}
	}

	hasReason := strings.TrimSpace(reason) != ""

	switch module {
	case ModuleScope, ModuleEstimate:
		fromOrd, _ := Ordinal(module, from)
		toOrd, _ := Ordinal(module, to)
		if toOrd < fromOrd {
			if !hasReason {
				return Decision{RequiresReason: true, Err: ErrReasonRequired}
			}
			return Decision{Allowed: true, RequiresReason: true}
		}
		if module == ModuleEstimate && from == EstimateInternalReview && to == EstimateApproved {
			if !hasReason {
				return Decision{RequiresReason: true, Err: ErrJustificationRequired}
			}
			return Decision{Allowed: true, RequiresReason: true}
		}
	case ModuleProject, ModuleVE:
		// No ordering rules.
	}

	return Decision{Allowed: true}
}
