package model

// TurnLimit bounds the per-game turn limit a run or a stored record may use.
const TurnLimit = 100

// GuessRecord is one submitted guess and the feedback it received.
type GuessRecord struct {
	Guess    Word     `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Trace is the ordered list of guesses made in one game.
type Trace []GuessRecord

// Status is the terminal state of a game.
type Status string

const (
	StatusSolved        Status = "solved"
	StatusFailed        Status = "failed"
	StatusStrategyError Status = "strategy_error"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSolved, StatusFailed, StatusStrategyError:
		return true
	}
	return false
}

// Outcome is the result of one (strategy, secret word) game.
//
// Turns is the solving turn for solved games and the number of accepted
// guesses otherwise. StrategyError outcomes count as failures in every
// aggregate but keep the diagnostic message in Error.
type Outcome struct {
	Word   Word   `json:"word"`
	Status Status `json:"status"`
	Turns  int    `json:"turns"`
	Error  string `json:"error,omitempty"`
	Trace  Trace  `json:"trace,omitempty"`
}

// Solved reports whether the game ended with the secret guessed.
func (o Outcome) Solved() bool { return o.Status == StatusSolved }

// Rank maps the outcome onto the ordinal turn scale: solved games rank at
// their turn count, every failure ranks at maxTurns+1.
func (o Outcome) Rank(maxTurns int) int {
	if o.Solved() {
		return o.Turns
	}
	return maxTurns + 1
}
