package model

import (
	"fmt"
	"strings"
)

// Judgment is the verdict for a single letter of a guess.
type Judgment uint8

const (
	Absent  Judgment = iota // letter not in the secret, or all occurrences used up
	Present                 // letter elsewhere in the secret
	Correct                 // letter in the right position
)

// Text symbols used when a Feedback is rendered or serialized.
const (
	symbolAbsent  = '.'
	symbolPresent = 'Y'
	symbolCorrect = 'G'
)

func (j Judgment) String() string {
	switch j {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return fmt.Sprintf("judgment(%d)", uint8(j))
	}
}

func (j Judgment) symbol() byte {
	switch j {
	case Correct:
		return symbolCorrect
	case Present:
		return symbolPresent
	default:
		return symbolAbsent
	}
}

// Feedback holds one Judgment per guess position.
type Feedback []Judgment

// Solved reports whether every position is Correct.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, j := range f {
		if j != Correct {
			return false
		}
	}
	return true
}

// Equal reports whether two feedbacks match position by position.
func (f Feedback) Equal(o Feedback) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the feedback as G (correct), Y (present) and . (absent).
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(len(f))
	for _, j := range f {
		b.WriteByte(j.symbol())
	}
	return b.String()
}

// MarshalText encodes the feedback in its compact string form.
func (f Feedback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes the compact string form.
func (f *Feedback) UnmarshalText(text []byte) error {
	out := make(Feedback, len(text))
	for i, c := range text {
		switch c {
		case symbolCorrect:
			out[i] = Correct
		case symbolPresent:
			out[i] = Present
		case symbolAbsent:
			out[i] = Absent
		default:
			return fmt.Errorf("%w: unexpected symbol %q", ErrInvalidFeedback, c)
		}
	}
	*f = out
	return nil
}

// ParseFeedback decodes the compact string form.
func ParseFeedback(s string) (Feedback, error) {
	var f Feedback
	if err := f.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return f, nil
}
