// Package wordlist loads word lists from files.
package wordlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyWordList is returned when a word list contains no words.
var ErrEmptyWordList = errors.New("word list is empty")

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return LoadWordsFrom(file)
}

// LoadWordsFrom reads the whole reader and parses it as a word list.
func LoadWordsFrom(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	words := ParseWords(string(data))
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	return words, nil
}

// ParseWords splits newline-delimited content into unique, non-empty words.
// Order of first occurrence is preserved.
func ParseWords(content string) []string {
	lines := strings.Split(content, "\n")
	words := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		word := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}
