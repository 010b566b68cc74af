// Package scoring judges guesses against secret words.
package scoring

import (
	"fmt"

	"github.com/okian/wordlebench/internal/domain/model"
)

// Score returns the per-letter feedback for guess against secret.
//
// Exact matches are resolved first and consume the secret's letter pool;
// the remaining positions are then judged left to right, so earlier
// duplicates in the guess win Present over later ones.
func Score(guess, secret model.Word) (model.Feedback, error) {
	if len(guess) != len(secret) {
		return nil, fmt.Errorf("%w: guess %q has %d letters, secret has %d",
			ErrLengthMismatch, guess, len(guess), len(secret))
	}

	var pool [256]int
	for i := 0; i < len(secret); i++ {
		pool[secret[i]]++
	}

	fb := make(model.Feedback, len(guess))
	for i := 0; i < len(guess); i++ {
		if guess[i] == secret[i] {
			fb[i] = model.Correct
			pool[guess[i]]--
		}
	}
	for i := 0; i < len(guess); i++ {
		if fb[i] == model.Correct {
			continue
		}
		if pool[guess[i]] > 0 {
			fb[i] = model.Present
			pool[guess[i]]--
		}
	}
	return fb, nil
}

// Consistent reports whether candidate could still be the secret given
// every record in trace, i.e. scoring each past guess against candidate
// reproduces the feedback that guess received.
func Consistent(candidate model.Word, trace model.Trace) bool {
	for _, rec := range trace {
		fb, err := Score(rec.Guess, candidate)
		if err != nil || !fb.Equal(rec.Feedback) {
			return false
		}
	}
	return true
}

// FollowsHints reports whether guess obeys hard-mode rules for trace:
// every Correct letter stays in place and every revealed letter is reused
// at least as many times as it was revealed.
func FollowsHints(guess model.Word, trace model.Trace) bool {
	for _, rec := range trace {
		if len(rec.Guess) != len(guess) || len(rec.Feedback) != len(guess) {
			return false
		}
		var need, have [256]int
		for i := 0; i < len(guess); i++ {
			have[guess[i]]++
			switch rec.Feedback[i] {
			case model.Correct:
				if guess[i] != rec.Guess[i] {
					return false
				}
				need[rec.Guess[i]]++
			case model.Present:
				need[rec.Guess[i]]++
			}
		}
		for c := range need {
			if have[c] < need[c] {
				return false
			}
		}
	}
	return true
}
