package perf

import (
	"github.com/montanaflynn/stats"

	"github.com/okian/wordlebench/internal/domain/model"
)

// Summary is derived from a Record on demand.
type Summary struct {
	Total          int
	Solved         int
	Failed         int // includes strategy errors
	StrategyErrors int
	SolveRate      float64
	MeanTurns      float64 // over solved games, 0 when none
	MedianTurns    float64 // over solved games, 0 when none
	// Histogram[i] counts games solved in i+1 turns.
	Histogram []int
	// CumulativeGuesses is the total number of guesses accepted across all
	// games.
	CumulativeGuesses int
}

// Summary computes aggregate statistics for the record.
func (r *Record) Summary() Summary {
	s := Summary{
		Total:     len(r.Outcomes),
		Histogram: make([]int, max(r.MaxTurns, 0)),
	}

	turns := make(stats.Float64Data, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		s.CumulativeGuesses += o.Turns
		switch o.Status {
		case model.StatusSolved:
			s.Solved++
			turns = append(turns, float64(o.Turns))
			if o.Turns >= 1 && o.Turns <= len(s.Histogram) {
				s.Histogram[o.Turns-1]++
			}
		case model.StatusStrategyError:
			s.StrategyErrors++
			s.Failed++
		default:
			s.Failed++
		}
	}

	if s.Total > 0 {
		s.SolveRate = float64(s.Solved) / float64(s.Total)
	}
	if len(turns) > 0 {
		s.MeanTurns, _ = stats.Mean(turns)
		s.MedianTurns, _ = stats.Median(turns)
	}
	return s
}

// SolvedTurns returns the turn counts of solved games in outcome order.
func (r *Record) SolvedTurns() []float64 {
	out := make([]float64, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Solved() {
			out = append(out, float64(o.Turns))
		}
	}
	return out
}

// Ranks returns every outcome on the ordinal turn scale, with failures
// placed at MaxTurns+1.
func (r *Record) Ranks() []float64 {
	out := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = float64(o.Rank(r.MaxTurns))
	}
	return out
}
