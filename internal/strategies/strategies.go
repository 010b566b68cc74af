// Package strategies holds the reference guessing strategies shipped with the
// CLI. They exist to exercise the harness and as a floor for new strategies.
package strategies

import (
	"cmp"
	"slices"
	"sync"

	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/scoring"
	"github.com/okian/wordlebench/internal/domain/strategy"
)

// Version of the Basic and Common strategies.
const Version = "0.1.1"

// Stupid guesses the first words of the list in order.
type Stupid struct{}

func (Stupid) NewGame(guesses *model.WordList) strategy.Game {
	return stupidGame{guesses: guesses}
}

type stupidGame struct {
	guesses *model.WordList
}

func (g stupidGame) Guess(history model.Trace) string {
	if g.guesses.Len() == 0 {
		return ""
	}
	return string(g.guesses.At(len(history) % g.guesses.Len()))
}

// Basic is a hard mode strategy that guesses the first listed word that
// could still be the answer.
type Basic struct {
	first model.Word
}

// BasicOption customises Basic.
type BasicOption func(*Basic)

// WithFirstWord fixes the opening guess.
func WithFirstWord(w model.Word) BasicOption {
	return func(b *Basic) {
		b.first = w
	}
}

// NewBasic creates a Basic strategy.
func NewBasic(opts ...BasicOption) *Basic {
	b := &Basic{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Basic) NewGame(guesses *model.WordList) strategy.Game {
	return &narrowingGame{first: b.first, remaining: guesses.Words()}
}

func (b *Basic) Version() string { return Version }
func (b *Basic) HardMode() bool  { return true }

// FirstWord returns the fixed opening guess, if any.
func (b *Basic) FirstWord() model.Word { return b.first }

// letterWeights is how often each letter a-z appears across the standard
// Wordle guess list.
var letterWeights = [26]int{
	5990, 1627, 2028, 2453, 6662, 1115, 1644, 1760, 3759, 291, 1505, 3371, 1976,
	2952, 4438, 2019, 112, 4158, 6665, 3295, 2511, 694, 1039, 288, 2074, 434,
}

// Common is Basic with the word list ordered by how common each word's
// distinct letters are, so early guesses cover frequent letters.
type Common struct {
	mu     sync.Mutex
	sorted map[*model.WordList][]model.Word
}

func (c *Common) NewGame(guesses *model.WordList) strategy.Game {
	return &narrowingGame{remaining: c.order(guesses)}
}

func (c *Common) Version() string { return Version }
func (c *Common) HardMode() bool  { return true }

// order sorts once per word list; games get their own copy.
func (c *Common) order(guesses *model.WordList) []model.Word {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sorted, ok := c.sorted[guesses]; ok {
		return slices.Clone(sorted)
	}
	if c.sorted == nil {
		c.sorted = make(map[*model.WordList][]model.Word)
	}

	sorted := guesses.Words()
	slices.SortStableFunc(sorted, func(a, b model.Word) int {
		return cmp.Compare(weight(b), weight(a))
	})
	c.sorted[guesses] = sorted
	return slices.Clone(sorted)
}

func weight(w model.Word) int {
	var seen [26]bool
	total := 0
	for i := 0; i < len(w); i++ {
		l := w[i] - 'a'
		if !seen[l] {
			seen[l] = true
			total += letterWeights[l]
		}
	}
	return total
}

// narrowingGame keeps the candidates consistent with every feedback seen so
// far and guesses the first of them.
type narrowingGame struct {
	first     model.Word
	remaining []model.Word
	seen      int
}

func (g *narrowingGame) Guess(history model.Trace) string {
	if len(history) == 0 && g.first != "" {
		return string(g.first)
	}
	for ; g.seen < len(history); g.seen++ {
		last := history[g.seen : g.seen+1]
		g.remaining = slices.DeleteFunc(g.remaining, func(w model.Word) bool {
			return !scoring.Consistent(w, last)
		})
	}
	if len(g.remaining) == 0 {
		return ""
	}
	return string(g.remaining[0])
}

// Registry returns the reference strategies by name.
func Registry() map[string]strategy.Strategy {
	return map[string]strategy.Strategy{
		"stupid": Stupid{},
		"basic":  NewBasic(),
		"common": &Common{},
	}
}
