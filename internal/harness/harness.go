// Package harness evaluates guessing strategies over a corpus of secret
// words and turns the outcomes into performance records.
package harness

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/wordlebench/internal/adapters/baseline"
	jobqueue "github.com/okian/wordlebench/internal/adapters/mq/queue"
	workerpool "github.com/okian/wordlebench/internal/adapters/mq/worker"
	"github.com/okian/wordlebench/internal/domain/game"
	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/perf"
	"github.com/okian/wordlebench/internal/domain/stats"
	"github.com/okian/wordlebench/internal/domain/strategy"
	"github.com/okian/wordlebench/pkg/logger"
	"github.com/okian/wordlebench/pkg/metrics"
)

// Default harness configuration constants.
const (
	defaultQueueSize  = 1024
	defaultCorpusName = "default"
)

// ExecutionMode selects how games are scheduled.
type ExecutionMode string

const (
	Serial   ExecutionMode = "serial"
	Parallel ExecutionMode = "parallel"
)

// ParseExecutionMode accepts "serial" or "parallel" in any case.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch m := ExecutionMode(strings.ToLower(strings.TrimSpace(s))); m {
	case Serial, Parallel:
		return m, nil
	default:
		return "", fmt.Errorf("%w: execution mode %q", ErrInvalidConfig, s)
	}
}

type entry struct {
	name     string
	label    string
	version  string
	hardMode bool
	strategy strategy.Strategy
	answers  []model.Word
	override bool
}

// Harness owns the registered strategies and the corpus configuration.
// Configuration is fixed once Run starts; Register may not be called
// concurrently with Run.
type Harness struct {
	mu      sync.Mutex
	entries []*entry

	answers      []model.Word
	guesses      *model.WordList
	selection    Selection
	mode         ExecutionMode
	maxTurns     int
	workerCount  int
	queueSize    int
	retainTraces bool
	corpusName   string

	store      baseline.Store
	alpha      float64
	minSamples int

	logger logger.Logger
}

// New constructs a Harness with default configuration.
func New(opts ...Option) *Harness {
	h := &Harness{
		selection:   All(),
		mode:        Serial,
		maxTurns:    game.DefaultMaxTurns,
		workerCount: runtime.NumCPU(),
		queueSize:   defaultQueueSize,
		corpusName:  defaultCorpusName,
		alpha:       stats.DefaultAlpha,
		minSamples:  stats.DefaultMinSamples,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.logger == nil {
		h.logger = logger.Get().Named("harness")
	}

	return h
}

// Register adds a strategy under a unique name.
func (h *Harness) Register(name string, s strategy.Strategy, opts ...RegisterOption) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty strategy name", ErrInvalidConfig)
	}
	if s == nil {
		return fmt.Errorf("%w: nil strategy %q", ErrInvalidConfig, name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateStrategy, name)
		}
	}

	e := &entry{
		name:     name,
		label:    strategy.Label(name, s),
		version:  strategy.VersionOf(s),
		hardMode: strategy.IsHardMode(s),
		strategy: s,
	}
	for _, opt := range opts {
		opt(e)
	}
	h.entries = append(h.entries, e)
	return nil
}

// Strategies returns the registered names in registration order.
func (h *Harness) Strategies() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.name
	}
	return names
}

// RunResult is the output of one Run. Records follow registration order.
type RunResult struct {
	ID        uuid.UUID
	Mode      ExecutionMode
	StartedAt time.Time
	Duration  time.Duration
	Names     []string
	Records   []*perf.Record
}

// Lookup returns the record of the strategy registered as name.
func (r *RunResult) Lookup(name string) (*perf.Record, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Records[i], true
		}
	}
	return nil, false
}

// plan is the fixed schedule of one run.
type plan struct {
	entries []*entry
	words   [][]model.Word
	guesses []*model.WordList
	offsets []int
	total   int
}

func (h *Harness) plan() (*plan, error) {
	h.mu.Lock()
	entries := append([]*entry(nil), h.entries...)
	h.mu.Unlock()

	if len(entries) == 0 {
		return nil, ErrNoStrategies
	}
	if h.maxTurns < 1 || h.maxTurns > model.TurnLimit {
		return nil, fmt.Errorf("%w: max turns %d outside [1, %d]", ErrInvalidConfig, h.maxTurns, model.TurnLimit)
	}
	if h.mode != Serial && h.mode != Parallel {
		return nil, fmt.Errorf("%w: execution mode %q", ErrInvalidConfig, h.mode)
	}

	if err := checkWords("answer", h.answers); err != nil {
		return nil, err
	}
	if err := checkWords("guess", h.guesses.Words()); err != nil {
		return nil, err
	}
	shared := h.allowed(h.answers)

	p := &plan{
		entries: entries,
		words:   make([][]model.Word, len(entries)),
		guesses: make([]*model.WordList, len(entries)),
		offsets: make([]int, len(entries)),
	}
	for i, e := range entries {
		answers, guesses := h.answers, shared
		if e.override {
			if err := checkWords(e.name+" answer", e.answers); err != nil {
				return nil, err
			}
			answers, guesses = e.answers, h.allowed(e.answers)
		}
		words := h.selection.Apply(answers)
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: strategy %q with selection %s", ErrEmptyCorpus, e.name, h.selection)
		}
		p.words[i] = words
		p.guesses[i] = guesses
		p.offsets[i] = p.total
		p.total += len(words)
	}
	return p, nil
}

// allowed is the guess list for games over answers. Every answer is a
// legal guess; an empty guess list leaves guesses unrestricted.
func (h *Harness) allowed(answers []model.Word) *model.WordList {
	if h.guesses.Len() == 0 {
		return h.guesses
	}
	return model.NewWordList(append(h.guesses.Words(), answers...))
}

// checkWords rejects words that did not come out of model.ParseWord.
func checkWords(role string, words []model.Word) error {
	for i, w := range words {
		parsed, err := model.ParseWord(string(w))
		if err != nil {
			return fmt.Errorf("%w: %s %d: %w", ErrInvalidConfig, role, i, err)
		}
		if parsed != w {
			return fmt.Errorf("%w: %s %d: %q is not normalized", ErrInvalidConfig, role, i, w)
		}
	}
	return nil
}

func (p *plan) jobs() iter.Seq[model.Job] {
	return func(yield func(model.Job) bool) {
		for i, words := range p.words {
			for k, w := range words {
				if !yield(model.Job{Slot: p.offsets[i] + k, Strategy: i, Word: w}) {
					return
				}
			}
		}
	}
}

// Run plays every registered strategy against every selected word and
// returns one record per strategy. Per-game failures are folded into the
// records; configuration errors and cancellation return no records.
func (h *Harness) Run(ctx context.Context) (res *RunResult, err error) {
	runID := uuid.New()
	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.RecordRun(string(h.mode), result, time.Since(start).Seconds())
	}()

	p, err := h.plan()
	if err != nil {
		return nil, err
	}

	h.logger.Info(ctx, "run started",
		logger.String("run_id", runID.String()),
		logger.String("mode", string(h.mode)),
		logger.Int("strategies", len(p.entries)),
		logger.Int("games", p.total),
		logger.String("selection", h.selection.String()),
	)

	play := &player{
		runners: make([]*game.Runner, len(p.entries)),
		entries: p.entries,
	}
	for i := range p.entries {
		play.runners[i] = game.NewRunner(
			game.WithMaxTurns(h.maxTurns),
			game.WithGuesses(p.guesses[i]),
			game.WithRetainTraces(h.retainTraces),
		)
	}
	results := newCollector(p.total)

	if h.mode == Parallel {
		err = h.runParallel(ctx, p, play, results)
	} else {
		err = h.runSerial(ctx, p, play, results)
	}
	if err != nil {
		h.logger.Warn(ctx, "run aborted", logger.String("run_id", runID.String()), logger.Error(err))
		return nil, err
	}
	if err := results.complete(); err != nil {
		return nil, err
	}

	res = &RunResult{
		ID:        runID,
		Mode:      h.mode,
		StartedAt: start,
		Names:     make([]string, len(p.entries)),
		Records:   make([]*perf.Record, len(p.entries)),
	}
	for i, e := range p.entries {
		outcomes := results.slice(p.offsets[i], len(p.words[i]))
		corpusName := h.corpusName
		if e.override {
			corpusName = e.name + "/answers"
		}
		rec := perf.NewRecord(e.label, e.version, e.hardMode, perf.NewCorpus(corpusName, p.words[i]), h.maxTurns, outcomes)
		h.observe(ctx, e, rec)
		res.Names[i] = e.name
		res.Records[i] = rec
	}
	res.Duration = time.Since(start)

	h.logger.Info(ctx, "run finished",
		logger.String("run_id", runID.String()),
		logger.Duration("duration", res.Duration),
	)
	return res, nil
}

func (h *Harness) runSerial(ctx context.Context, p *plan, play *player, results *collector) error {
	for j := range p.jobs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := results.Collect(j, play.Play(j)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) runParallel(ctx context.Context, p *plan, play *player, results *collector) error {
	q := jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(min(h.queueSize, p.total)))
	pool := workerpool.NewPool(min(h.workerCount, p.total), q, play, results,
		workerpool.WithLogger(h.logger.Named("worker")))

	gctx := pool.Start(ctx)
	var feedErr error
	for j := range p.jobs() {
		if feedErr = q.Enqueue(gctx, j); feedErr != nil {
			break
		}
	}
	_ = q.Close()

	if err := pool.Wait(); err != nil {
		return err
	}
	if feedErr != nil {
		return feedErr
	}
	return ctx.Err()
}

// observe reports per-record metrics and strategy errors.
func (h *Harness) observe(ctx context.Context, e *entry, rec *perf.Record) {
	for _, o := range rec.Outcomes {
		metrics.RecordGame(e.label, string(o.Status), o.Turns, o.Solved())
		if o.Status == model.StatusStrategyError {
			metrics.RecordStrategyError(e.label)
			h.logger.Debug(ctx, "strategy error",
				logger.String("strategy", e.label),
				logger.String("word", string(o.Word)),
				logger.String("error", o.Error),
			)
		}
	}

	s := rec.Summary()
	h.logger.Info(ctx, "strategy evaluated",
		logger.String("strategy", e.label),
		logger.Int("games", s.Total),
		logger.Float64("solve_rate", s.SolveRate),
		logger.Float64("mean_turns", s.MeanTurns),
		logger.Int("strategy_errors", s.StrategyErrors),
	)
}

// SaveBaseline stores rec under key.
func (h *Harness) SaveBaseline(ctx context.Context, key baseline.Key, rec *perf.Record, force bool) error {
	if h.store == nil {
		return ErrNoBaselineStore
	}
	return h.store.Save(ctx, key, rec, force)
}

// LoadBaseline loads the baseline stored under key.
func (h *Harness) LoadBaseline(ctx context.Context, key baseline.Key) (*perf.Record, error) {
	if h.store == nil {
		return nil, ErrNoBaselineStore
	}
	return h.store.Load(ctx, key)
}

// Compare loads the baseline under key and tests current against it.
func (h *Harness) Compare(ctx context.Context, current *perf.Record, key baseline.Key) (*stats.Comparison, error) {
	base, err := h.LoadBaseline(ctx, key)
	if err != nil {
		return nil, err
	}
	cmp, err := stats.Compare(current, base, stats.WithAlpha(h.alpha), stats.WithMinSamples(h.minSamples))
	if err != nil {
		metrics.RecordComparison("error")
		if errors.Is(err, stats.ErrCorpusMismatch) {
			h.logger.Warn(ctx, "baseline corpus differs",
				logger.String("baseline", key.String()),
				logger.String("strategy", current.Strategy),
			)
		}
		return nil, err
	}
	metrics.RecordComparison(string(cmp.Verdict))
	h.logger.Info(ctx, "compared against baseline",
		logger.String("baseline", key.String()),
		logger.String("verdict", string(cmp.Verdict)),
		logger.Float64("p_value", cmp.Turns.PValue),
		logger.Float64("effect_size", cmp.EffectSize),
	)
	return cmp, nil
}
