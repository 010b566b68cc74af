package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/okian/wordlebench/internal/domain/model"
)

// readWords loads one word per line. Blank lines and lines starting with #
// are skipped.
func readWords(path string) ([]model.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []model.Word
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := model.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
