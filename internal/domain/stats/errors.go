package stats

import "errors"

// Sentinel errors for comparisons. A corpus mismatch also matches
// ErrInsufficientData: records over different corpora carry no usable pairs.
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrCorpusMismatch   = errors.New("corpus mismatch")
)
