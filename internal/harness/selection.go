package harness

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/okian/wordlebench/internal/domain/model"
)

type selectionKind uint8

const (
	selectAll selectionKind = iota
	selectFirst
	selectRandom
)

// Selection picks the target words out of an answer list.
type Selection struct {
	kind selectionKind
	n    int
	seed uint64
}

// All selects every answer.
func All() Selection { return Selection{kind: selectAll} }

// First selects the first n answers.
func First(n int) Selection { return Selection{kind: selectFirst, n: n} }

// Random selects n answers chosen with a seeded generator. The picked words
// keep their original relative order, so the same seed over the same list
// always yields the same corpus.
func Random(n int, seed uint64) Selection { return Selection{kind: selectRandom, n: n, seed: seed} }

func (s Selection) String() string {
	switch s.kind {
	case selectFirst:
		return fmt.Sprintf("first(%d)", s.n)
	case selectRandom:
		return fmt.Sprintf("random(%d, seed=%d)", s.n, s.seed)
	default:
		return "all"
	}
}

// Apply returns the selected words. The input is never modified.
func (s Selection) Apply(words []model.Word) []model.Word {
	switch s.kind {
	case selectFirst:
		return slices.Clone(words[:clamp(s.n, len(words))])
	case selectRandom:
		n := clamp(s.n, len(words))
		if n == len(words) {
			return slices.Clone(words)
		}
		r := rand.New(rand.NewPCG(s.seed, s.seed))
		idx := r.Perm(len(words))[:n]
		slices.Sort(idx)
		out := make([]model.Word, n)
		for i, j := range idx {
			out[i] = words[j]
		}
		return out
	default:
		return slices.Clone(words)
	}
}

func clamp(n, limit int) int {
	return max(0, min(n, limit))
}
