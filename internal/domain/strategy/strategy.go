// Package strategy defines the contract pluggable guessing algorithms satisfy.
package strategy

import "github.com/okian/wordlebench/internal/domain/model"

// Strategy produces a fresh Game for every puzzle. Implementations must not
// carry state from one Game into another; the runner may call NewGame from
// several goroutines at once.
type Strategy interface {
	NewGame(guesses *model.WordList) Game
}

// Game is the per-puzzle state of a strategy. It is driven by a single
// goroutine and discarded when the puzzle ends.
type Game interface {
	// Guess returns the next guess given every guess made so far in this
	// game. The runner validates the returned string before scoring it.
	Guess(history model.Trace) string
}

// Versioned is implemented by strategies that report a version string.
type Versioned interface {
	Version() string
}

// HardModer is implemented by strategies that opt into hard mode; the runner
// then rejects guesses that contradict earlier feedback.
type HardModer interface {
	HardMode() bool
}

// Func adapts a stateless guessing function to Strategy.
type Func func(guesses *model.WordList, history model.Trace) string

// NewGame implements Strategy.
func (f Func) NewGame(guesses *model.WordList) Game {
	return funcGame{fn: f, guesses: guesses}
}

type funcGame struct {
	fn      Func
	guesses *model.WordList
}

func (g funcGame) Guess(history model.Trace) string { return g.fn(g.guesses, history) }

// VersionOf returns the strategy version, or "" when it has none.
func VersionOf(s Strategy) string {
	if v, ok := any(s).(Versioned); ok {
		return v.Version()
	}
	return ""
}

// IsHardMode reports whether the strategy opted into hard mode.
func IsHardMode(s Strategy) bool {
	if h, ok := any(s).(HardModer); ok {
		return h.HardMode()
	}
	return false
}

// Label is the display name recorded for a strategy: "name vX" when the
// strategy is versioned, otherwise just name.
func Label(name string, s Strategy) string {
	if v := VersionOf(s); v != "" {
		return name + " v" + v
	}
	return name
}
