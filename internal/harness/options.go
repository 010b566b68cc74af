package harness

import (
	"github.com/okian/wordlebench/internal/adapters/baseline"
	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/pkg/logger"
)

// Option applies a configuration option to the Harness.
type Option func(*Harness)

// WithAnswers sets the ordered list of secret words shared by every strategy.
func WithAnswers(words []model.Word) Option {
	return func(h *Harness) {
		h.answers = words
	}
}

// WithGuesses restricts the guesses strategies may submit. The answers a
// strategy plays against are always added, and the merged list is handed
// to the strategy as its read-only word list.
func WithGuesses(list *model.WordList) Option {
	return func(h *Harness) {
		h.guesses = list
	}
}

// WithSelection chooses which answers become target words.
func WithSelection(s Selection) Option {
	return func(h *Harness) {
		h.selection = s
	}
}

// WithExecutionMode sets serial or parallel execution.
func WithExecutionMode(mode ExecutionMode) Option {
	return func(h *Harness) {
		h.mode = mode
	}
}

// WithMaxTurns sets the number of guesses allowed per game.
func WithMaxTurns(n int) Option {
	return func(h *Harness) {
		h.maxTurns = n
	}
}

// WithWorkerCount sets the number of worker goroutines in parallel mode.
func WithWorkerCount(count int) Option {
	return func(h *Harness) {
		if count > 0 {
			h.workerCount = count
		}
	}
}

// WithQueueSize sets the job queue capacity in parallel mode.
func WithQueueSize(size int) Option {
	return func(h *Harness) {
		if size > 0 {
			h.queueSize = size
		}
	}
}

// WithRetainTraces keeps every game's guess trace on its outcome.
func WithRetainTraces(retain bool) Option {
	return func(h *Harness) {
		h.retainTraces = retain
	}
}

// WithCorpusName labels the corpus recorded on every record.
func WithCorpusName(name string) Option {
	return func(h *Harness) {
		if name != "" {
			h.corpusName = name
		}
	}
}

// WithBaselineStore sets the store used by SaveBaseline, LoadBaseline and Compare.
func WithBaselineStore(store baseline.Store) Option {
	return func(h *Harness) {
		h.store = store
	}
}

// WithSignificance sets the significance threshold used by Compare.
func WithSignificance(alpha float64) Option {
	return func(h *Harness) {
		h.alpha = alpha
	}
}

// WithMinSamples sets the minimum outcomes per record required by Compare.
func WithMinSamples(n int) Option {
	return func(h *Harness) {
		h.minSamples = n
	}
}

// WithLogger sets a custom logger for the harness.
func WithLogger(logger logger.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// RegisterOption customises a single strategy registration.
type RegisterOption func(*entry)

// OverrideAnswers evaluates the strategy against its own answer list
// instead of the harness-wide one. Selection still applies.
func OverrideAnswers(words []model.Word) RegisterOption {
	return func(e *entry) {
		e.answers = words
		e.override = true
	}
}
