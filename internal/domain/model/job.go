package model

// Job is one (strategy, secret word) game scheduled by the harness.
type Job struct {
	Slot     int  // index of the result cell the outcome is written to
	Strategy int  // index of the registered strategy
	Word     Word // secret word
}
