package game

import "errors"

// Sentinel kinds carried in StrategyError outcome messages.
var (
	ErrStrategy        = errors.New("strategy error")
	ErrNotInWordList   = errors.New("guess not in word list")
	ErrHardModeViolate = errors.New("guess violates hard mode")
	ErrStrategyPanic   = errors.New("strategy panicked")
)
