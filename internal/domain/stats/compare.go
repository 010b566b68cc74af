// Package stats decides whether two performance records differ significantly.
package stats

import (
	"fmt"

	"github.com/okian/wordlebench/internal/domain/perf"
)

// Verdict summarises a comparison from the current record's point of view.
type Verdict string

const (
	VerdictImproved  Verdict = "improved"
	VerdictRegressed Verdict = "regressed"
	VerdictNoChange  Verdict = "no_change"
)

// Test names reported on TestResult.
const (
	TestMannWhitney = "mann-whitney-u"
	TestWelch       = "welch-t"
	TestFisher      = "fisher-exact"
)

// Comparison holds the summaries of both records and the tests run on them.
//
// Significant and Verdict are driven by the turn-count test. The solved-turn
// and solve-rate tests are reported alongside for diagnostics; SolvedTurns is
// nil when either record has fewer than two solved games.
type Comparison struct {
	CurrentLabel  string       `json:"current"`
	BaselineLabel string       `json:"baseline"`
	Current       perf.Summary `json:"-"`
	Baseline      perf.Summary `json:"-"`
	Alpha         float64      `json:"alpha"`
	Turns         TestResult   `json:"turns"`
	SolvedTurns   *TestResult  `json:"solved_turns,omitempty"`
	SolveRate     TestResult   `json:"solve_rate"`
	// EffectSize is Cliff's delta on the turn scale; positive means the
	// current record needs fewer turns.
	EffectSize  float64 `json:"effect_size"`
	Significant bool    `json:"significant"`
	Verdict     Verdict `json:"verdict"`
}

// Compare tests current against baseline. Both records must cover the same
// ordered corpus and hold at least the minimum number of outcomes.
func Compare(current, baseline *perf.Record, opts ...Option) (*Comparison, error) {
	cfg := config{alpha: DefaultAlpha, minSamples: DefaultMinSamples}
	for _, opt := range opts {
		opt(&cfg)
	}

	if current == nil || baseline == nil {
		return nil, fmt.Errorf("%w: missing record", ErrInsufficientData)
	}
	if n := len(current.Outcomes); n < cfg.minSamples {
		return nil, fmt.Errorf("%w: current record has %d outcomes, need %d", ErrInsufficientData, n, cfg.minSamples)
	}
	if n := len(baseline.Outcomes); n < cfg.minSamples {
		return nil, fmt.Errorf("%w: baseline record has %d outcomes, need %d", ErrInsufficientData, n, cfg.minSamples)
	}
	if !perf.SameCorpus(current, baseline) {
		return nil, fmt.Errorf("%w: %w: %q (%s) vs %q (%s)", ErrCorpusMismatch, ErrInsufficientData,
			current.Corpus.Name, short(current.Corpus.Fingerprint),
			baseline.Corpus.Name, short(baseline.Corpus.Fingerprint))
	}

	res := &Comparison{
		CurrentLabel:  current.Strategy,
		BaselineLabel: baseline.Strategy,
		Current:       current.Summary(),
		Baseline:      baseline.Summary(),
		Alpha:         cfg.alpha,
	}

	// Failures from both records share one rank above either turn limit.
	limit := max(current.MaxTurns, baseline.MaxTurns)
	x, y := ranks(current, limit), ranks(baseline, limit)
	u, p := MannWhitney(x, y)
	res.Turns = TestResult{Name: TestMannWhitney, Statistic: u, PValue: p, Significant: p < cfg.alpha}
	res.EffectSize = 1 - 2*u/(float64(len(x))*float64(len(y)))

	if t, p, err := Welch(current.SolvedTurns(), baseline.SolvedTurns()); err == nil {
		res.SolvedTurns = &TestResult{Name: TestWelch, Statistic: t, PValue: p, Significant: p < cfg.alpha}
	}

	cs, bs := res.Current, res.Baseline
	fp := FisherExact(cs.Solved, cs.Failed, bs.Solved, bs.Failed)
	res.SolveRate = TestResult{Name: TestFisher, Statistic: cs.SolveRate - bs.SolveRate, PValue: fp, Significant: fp < cfg.alpha}

	res.Significant = res.Turns.Significant
	switch {
	case !res.Significant:
		res.Verdict = VerdictNoChange
	case res.EffectSize > 0:
		res.Verdict = VerdictImproved
	default:
		res.Verdict = VerdictRegressed
	}
	return res, nil
}

func ranks(r *perf.Record, limit int) []float64 {
	out := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = float64(o.Rank(limit))
	}
	return out
}

func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
