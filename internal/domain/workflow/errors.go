package workflow

import "errors"

var (
	// ErrReasonRequired indicates a backward transition was requested
	// without a reason.
	ErrReasonRequired = errors.New("reason required when moving to a previous status")
	// ErrJustificationRequired indicates the external review step is
	// being skipped without a justification.
	ErrJustificationRequired = errors.New("justification required when skipping external review")
	// ErrInvalidStatus indicates a status outside the module's enum.
	ErrInvalidStatus = errors.New("status is not valid for module")
)
