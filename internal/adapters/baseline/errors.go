package baseline

import "errors"

// Sentinel errors for baseline persistence.
var (
	ErrBaselineNotFound = errors.New("baseline not found")
	ErrBaselineFormat   = errors.New("baseline format error")
	ErrBaselineExists   = errors.New("baseline already exists")
	ErrInvalidKey       = errors.New("invalid baseline key")
	ErrUnknownBackend   = errors.New("unknown baseline backend")
)
