package scoring

import "errors"

// ErrLengthMismatch is returned when guess and secret differ in length.
var ErrLengthMismatch = errors.New("length mismatch")
