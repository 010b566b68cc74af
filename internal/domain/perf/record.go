// Package perf holds the aggregated outcome of a strategy over a corpus.
package perf

import (
	"fmt"

	"github.com/okian/wordlebench/internal/domain/model"
)

// FormatVersion tags the persisted record layout. Bump it whenever a field
// changes meaning.
const FormatVersion = 1

// Record is the performance of one strategy over one corpus. Outcomes are
// ordered like the corpus.
type Record struct {
	FormatVersion int             `json:"format_version"`
	Strategy      string          `json:"strategy"`
	Version       string          `json:"version,omitempty"`
	HardMode      bool            `json:"hard_mode,omitempty"`
	Corpus        Corpus          `json:"corpus"`
	MaxTurns      int             `json:"max_turns"`
	Outcomes      []model.Outcome `json:"outcomes"`
}

// NewRecord assembles a record at the current FormatVersion.
func NewRecord(strategy, version string, hardMode bool, corpus Corpus, maxTurns int, outcomes []model.Outcome) *Record {
	return &Record{
		FormatVersion: FormatVersion,
		Strategy:      strategy,
		Version:       version,
		HardMode:      hardMode,
		Corpus:        corpus,
		MaxTurns:      maxTurns,
		Outcomes:      outcomes,
	}
}

// Words returns the secret words in outcome order.
func (r *Record) Words() []model.Word {
	words := make([]model.Word, len(r.Outcomes))
	for i, o := range r.Outcomes {
		words[i] = o.Word
	}
	return words
}

// Validate checks the structural invariants of a record.
func (r *Record) Validate() error {
	if r.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: format version %d, want %d", ErrInvalidRecord, r.FormatVersion, FormatVersion)
	}
	if r.Strategy == "" {
		return fmt.Errorf("%w: empty strategy name", ErrInvalidRecord)
	}
	if r.MaxTurns < 1 || r.MaxTurns > model.TurnLimit {
		return fmt.Errorf("%w: max turns %d outside [1, %d]", ErrInvalidRecord, r.MaxTurns, model.TurnLimit)
	}
	if r.Corpus.Size != len(r.Outcomes) {
		return fmt.Errorf("%w: corpus size %d but %d outcomes", ErrInvalidRecord, r.Corpus.Size, len(r.Outcomes))
	}
	if fp := Fingerprint(r.Words()); fp != r.Corpus.Fingerprint {
		return fmt.Errorf("%w: corpus fingerprint mismatch", ErrInvalidRecord)
	}
	for i, o := range r.Outcomes {
		if err := validateOutcome(o, r.MaxTurns); err != nil {
			return fmt.Errorf("%w: outcome %d (%s): %w", ErrInvalidRecord, i, o.Word, err)
		}
	}
	return nil
}

func validateOutcome(o model.Outcome, maxTurns int) error {
	if err := canonical(o.Word); err != nil {
		return err
	}
	if !o.Status.Valid() {
		return fmt.Errorf("unknown status %q", o.Status)
	}
	if o.Turns < 0 || o.Turns > maxTurns {
		return fmt.Errorf("turns %d outside [0, %d]", o.Turns, maxTurns)
	}
	if o.Solved() && o.Turns < 1 {
		return fmt.Errorf("solved in %d turns", o.Turns)
	}
	if n := len(o.Trace); n > maxTurns {
		return fmt.Errorf("trace has %d guesses, max %d", n, maxTurns)
	}
	for i, g := range o.Trace {
		if err := canonical(g.Guess); err != nil {
			return fmt.Errorf("guess %d: %w", i+1, err)
		}
		if len(g.Feedback) != model.WordLength {
			return fmt.Errorf("guess %d: feedback length %d", i+1, len(g.Feedback))
		}
	}
	if n := len(o.Trace); n > 0 && o.Solved() && o.Trace[n-1].Guess != o.Word {
		return fmt.Errorf("solved but last guess is %q", o.Trace[n-1].Guess)
	}
	return nil
}

// canonical accepts only words exactly as model.ParseWord returns them.
func canonical(w model.Word) error {
	parsed, err := model.ParseWord(string(w))
	if err != nil {
		return err
	}
	if parsed != w {
		return fmt.Errorf("%w: %q is not normalized", model.ErrInvalidWord, w)
	}
	return nil
}
