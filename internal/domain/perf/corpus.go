package perf

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/okian/wordlebench/internal/domain/model"
)

// Corpus identifies the ordered list of secret words a record covers.
// Two corpora are the same when their fingerprints match; Name is a label.
type Corpus struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Fingerprint string `json:"fingerprint"`
}

// NewCorpus fingerprints words in order.
func NewCorpus(name string, words []model.Word) Corpus {
	return Corpus{
		Name:        name,
		Size:        len(words),
		Fingerprint: Fingerprint(words),
	}
}

// Fingerprint returns the hex sha256 of the newline-joined word list.
func Fingerprint(words []model.Word) string {
	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Matches reports whether c and o describe the same ordered word list.
func (c Corpus) Matches(o Corpus) bool {
	return c.Size == o.Size && c.Fingerprint == o.Fingerprint
}

// SameCorpus reports whether a and b were evaluated over exactly the same
// words in the same order.
func SameCorpus(a, b *Record) bool {
	if !a.Corpus.Matches(b.Corpus) {
		return false
	}
	return slices.Equal(a.Words(), b.Words())
}
