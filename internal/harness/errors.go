package harness

import "errors"

// Sentinel errors for harness configuration and runs.
var (
	ErrNoStrategies      = errors.New("no strategies registered")
	ErrEmptyCorpus       = errors.New("no target words selected")
	ErrDuplicateStrategy = errors.New("strategy already registered")
	ErrInvalidConfig     = errors.New("invalid harness configuration")
	ErrNoBaselineStore   = errors.New("no baseline store configured")
	ErrIncompleteRun     = errors.New("run finished with unfilled result slots")
)
