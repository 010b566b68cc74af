package model

import "errors"

// Sentinel errors for model validation.
var (
	ErrInvalidWord     = errors.New("invalid word")
	ErrInvalidFeedback = errors.New("invalid feedback")
)
