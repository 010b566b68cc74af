package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrNotStarted = errors.New("worker pool not started")
)
