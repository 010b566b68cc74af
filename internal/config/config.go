// Package config defines harness configuration and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and the environment on top.
// - Validate reports the first offending key wrapped in ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/wordlebench/internal/domain/model"
)

// Selection names accepted by the selection key.
const (
	SelectionFirst  = "first"
	SelectionRandom = "random"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WordsToTest limits the corpus; 0 tests every answer.
	WordsToTest int `koanf:"words_to_test"`

	// Selection picks how WordsToTest answers are chosen: first or random.
	Selection string `koanf:"selection"`

	// Seed drives random selection.
	Seed uint64 `koanf:"seed"`

	// ExecutionMode is serial or parallel.
	ExecutionMode string `koanf:"execution_mode"`

	// WorkerCount sets the number of game workers in parallel mode.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// MaxTurns is the number of guesses allowed per game.
	MaxTurns int `koanf:"max_turns"`

	// SignificanceThreshold is the alpha used by baseline comparisons.
	SignificanceThreshold float64 `koanf:"significance_threshold"`

	// MinSamples is the smallest record Compare accepts.
	MinSamples int `koanf:"min_samples"`

	// RetainTraces keeps every guess of every game on the records.
	RetainTraces bool `koanf:"retain_traces"`

	// BaselineBackend is file or badger.
	BaselineBackend string `koanf:"baseline_backend"`

	// BaselineDir is where baselines are stored.
	BaselineDir string `koanf:"baseline_dir"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		WordsToTest:           0,
		Selection:             SelectionFirst,
		Seed:                  1,
		ExecutionMode:         "parallel",
		WorkerCount:           runtime.NumCPU(),
		QueueSize:             1024,
		MaxTurns:              6,
		SignificanceThreshold: 0.05,
		MinSamples:            2,
		BaselineBackend:       "file",
		BaselineDir:           ".wordlebench/baselines",
	}
}

// Validate checks every key for a usable value.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log_level", c.LogLevel)
	}
	if c.WordsToTest < 0 {
		return invalid("words_to_test", c.WordsToTest)
	}
	if c.Selection != SelectionFirst && c.Selection != SelectionRandom {
		return invalid("selection", c.Selection)
	}
	if c.ExecutionMode != "serial" && c.ExecutionMode != "parallel" {
		return invalid("execution_mode", c.ExecutionMode)
	}
	if c.WorkerCount < 1 {
		return invalid("worker_count", c.WorkerCount)
	}
	if c.QueueSize < 1 {
		return invalid("queue_size", c.QueueSize)
	}
	if c.MaxTurns < 1 || c.MaxTurns > model.TurnLimit {
		return invalid("max_turns", c.MaxTurns)
	}
	if c.SignificanceThreshold <= 0 || c.SignificanceThreshold >= 1 {
		return invalid("significance_threshold", c.SignificanceThreshold)
	}
	if c.MinSamples < 1 {
		return invalid("min_samples", c.MinSamples)
	}
	if c.BaselineBackend != "file" && c.BaselineBackend != "badger" {
		return invalid("baseline_backend", c.BaselineBackend)
	}
	if c.BaselineDir == "" {
		return invalid("baseline_dir", c.BaselineDir)
	}
	return nil
}

func invalid(key string, v any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, key, v)
}
