package game

import "github.com/okian/wordlebench/internal/domain/model"

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithMaxTurns sets the number of guesses allowed per game.
// Values below one are ignored.
func WithMaxTurns(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

// WithGuesses restricts accepted guesses to list. Without it any well
// formed word is accepted.
func WithGuesses(list *model.WordList) Option {
	return func(r *Runner) {
		r.guesses = list
	}
}

// WithRetainTraces keeps the full guess trace on every outcome.
func WithRetainTraces(retain bool) Option {
	return func(r *Runner) {
		r.retainTraces = retain
	}
}
