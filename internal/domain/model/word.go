// Package model contains domain models passed between layers.
package model

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// WordLength is the fixed puzzle width.
const WordLength = 5

// Word is a lower-case five letter word. Values produced by ParseWord are
// always valid; the zero value is not.
type Word string

// ParseWord normalizes s and checks it is exactly WordLength letters a-z.
func ParseWord(s string) (Word, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	if len(w) != WordLength {
		return "", fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidWord, s, len(w), WordLength)
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidWord, s, w[i])
		}
	}
	return Word(w), nil
}

// MustParseWord is ParseWord for literals; it panics on invalid input.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// MustParseWords is MustParseWord over a list of literals.
func MustParseWords(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = MustParseWord(s)
	}
	return out
}

// ParseWords parses every entry of ss, keeping order and duplicates.
func ParseWords(ss []string) ([]Word, error) {
	out := make([]Word, 0, len(ss))
	for _, s := range ss {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (w Word) String() string { return string(w) }

// WordList is an immutable, sorted, de-duplicated set of words. It is safe
// for concurrent readers.
type WordList struct {
	words []Word
	index map[Word]struct{}
}

// NewWordList builds a WordList from already parsed words.
func NewWordList(words []Word) *WordList {
	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b Word) int { return cmp.Compare(a, b) })
	sorted = slices.Compact(sorted)

	index := make(map[Word]struct{}, len(sorted))
	for _, w := range sorted {
		index[w] = struct{}{}
	}
	return &WordList{words: sorted, index: index}
}

// ParseWordList parses raw strings and builds a WordList.
func ParseWordList(ss []string) (*WordList, error) {
	words, err := ParseWords(ss)
	if err != nil {
		return nil, err
	}
	return NewWordList(words), nil
}

// Contains reports whether w is in the list. A nil list contains nothing.
func (l *WordList) Contains(w Word) bool {
	if l == nil {
		return false
	}
	_, ok := l.index[w]
	return ok
}

// Len returns the number of words.
func (l *WordList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// At returns the i-th word in sorted order.
func (l *WordList) At(i int) Word { return l.words[i] }

// All iterates words in sorted order.
func (l *WordList) All() iter.Seq2[int, Word] {
	return func(yield func(int, Word) bool) {
		if l == nil {
			return
		}
		for i, w := range l.words {
			if !yield(i, w) {
				return
			}
		}
	}
}

// Words returns a copy of the words in sorted order.
func (l *WordList) Words() []Word {
	if l == nil {
		return nil
	}
	return slices.Clone(l.words)
}
