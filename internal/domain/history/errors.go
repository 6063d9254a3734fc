package history

import "errors"

// ErrInvalidInput indicates an incomplete history entry.
var ErrInvalidInput = errors.New("invalid history entry")
