// Package game drives one strategy through one puzzle.
package game

import (
	"fmt"

	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/scoring"
	"github.com/okian/wordlebench/internal/domain/strategy"
)

// DefaultMaxTurns is the classic Wordle turn limit.
const DefaultMaxTurns = 6

// Runner plays games. It holds only read-only configuration and is safe
// for concurrent use.
type Runner struct {
	maxTurns     int
	guesses      *model.WordList
	retainTraces bool
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{maxTurns: DefaultMaxTurns}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxTurns returns the configured turn limit.
func (r *Runner) MaxTurns() int { return r.maxTurns }

// Play runs s against secret until it is solved, the turn limit is hit, or
// the strategy misbehaves. It never panics and never returns an error:
// every failure is folded into the outcome.
func (r *Runner) Play(s strategy.Strategy, secret model.Word) (out model.Outcome) {
	trace := make(model.Trace, 0, r.maxTurns)

	defer func() {
		if p := recover(); p != nil {
			out = r.strategyError(secret, trace, fmt.Errorf("%w: %v", ErrStrategyPanic, p))
		}
	}()

	hard := strategy.IsHardMode(s)
	g := s.NewGame(r.guesses)

	for turn := 1; turn <= r.maxTurns; turn++ {
		guess, err := r.validate(g.Guess(trace), trace, hard)
		if err != nil {
			return r.strategyError(secret, trace, err)
		}

		fb, err := scoring.Score(guess, secret)
		if err != nil {
			return r.strategyError(secret, trace, err)
		}
		trace = append(trace, model.GuessRecord{Guess: guess, Feedback: fb})

		if guess == secret {
			return r.finish(secret, model.StatusSolved, turn, trace)
		}
	}
	return r.finish(secret, model.StatusFailed, r.maxTurns, trace)
}

func (r *Runner) validate(raw string, trace model.Trace, hard bool) (model.Word, error) {
	guess, err := model.ParseWord(raw)
	if err != nil {
		return "", err
	}
	if r.guesses.Len() > 0 && !r.guesses.Contains(guess) {
		return "", fmt.Errorf("%w: %q", ErrNotInWordList, guess)
	}
	if hard && !scoring.FollowsHints(guess, trace) {
		return "", fmt.Errorf("%w: %q", ErrHardModeViolate, guess)
	}
	return guess, nil
}

func (r *Runner) strategyError(secret model.Word, trace model.Trace, cause error) model.Outcome {
	out := r.finish(secret, model.StatusStrategyError, len(trace), trace)
	out.Error = fmt.Errorf("%w: %w", ErrStrategy, cause).Error()
	return out
}

func (r *Runner) finish(secret model.Word, status model.Status, turns int, trace model.Trace) model.Outcome {
	out := model.Outcome{Word: secret, Status: status, Turns: turns}
	if r.retainTraces && len(trace) > 0 {
		out.Trace = trace
	}
	return out
}
