package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateLatest is returned when a write would leave more than
	// one latest record for a project and module. This is a structural
	// invariant violation, never corrected silently.
	ErrDuplicateLatest = errors.New("duplicate latest record for project and module")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
