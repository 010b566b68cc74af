package perf

import "errors"

// ErrInvalidRecord is returned by Record.Validate.
var ErrInvalidRecord = errors.New("invalid performance record")
