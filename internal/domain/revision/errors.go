package revision

import "errors"

var (
	// ErrRecordNotFound indicates the record doesn't exist.
	ErrRecordNotFound = errors.New("versioned record not found")
	// ErrInvalidInput indicates invalid input for record operations.
	ErrInvalidInput = errors.New("invalid record input")
	// ErrInvalidModule indicates a module with no versioned records.
	ErrInvalidModule = errors.New("module does not carry versioned records")
)
