package harness

import (
	"fmt"
	"sync"

	"github.com/okian/wordlebench/internal/domain/game"
	"github.com/okian/wordlebench/internal/domain/model"
)

// collector is the single point of mutation during a run: every job owns a
// pre-assigned slot, so completion order never affects the result layout.
type collector struct {
	mu       sync.Mutex
	outcomes []model.Outcome
	filled   []bool
	pending  int
}

func newCollector(size int) *collector {
	return &collector{
		outcomes: make([]model.Outcome, size),
		filled:   make([]bool, size),
		pending:  size,
	}
}

func (c *collector) Collect(j model.Job, out model.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if j.Slot < 0 || j.Slot >= len(c.outcomes) {
		return fmt.Errorf("slot %d out of range [0, %d)", j.Slot, len(c.outcomes))
	}
	if c.filled[j.Slot] {
		return fmt.Errorf("slot %d already filled", j.Slot)
	}
	c.outcomes[j.Slot] = out
	c.filled[j.Slot] = true
	c.pending--
	return nil
}

// slice returns the outcomes for slots [from, from+n). Call only after the
// run has finished.
func (c *collector) slice(from, n int) []model.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Outcome, n)
	copy(out, c.outcomes[from:from+n])
	return out
}

func (c *collector) complete() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != 0 {
		return fmt.Errorf("%w: %d of %d", ErrIncompleteRun, c.pending, len(c.outcomes))
	}
	return nil
}

// player runs jobs against the registered strategies. runners[i] carries
// the guess list of entries[i].
type player struct {
	runners []*game.Runner
	entries []*entry
}

func (p *player) Play(j model.Job) model.Outcome {
	return p.runners[j.Strategy].Play(p.entries[j.Strategy].strategy, j.Word)
}
