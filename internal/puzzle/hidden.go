package puzzle

import (
	"fmt"
	"unicode/utf8"

	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/wordlist"
)

// checkHidden rejects a hidden word that could never be placed.
func checkHidden(hidden string, dims model.Dimensions) error {
	if hidden == "" {
		return nil
	}
	if n := utf8.RuneCountInString(hidden); n > dims.MaxWordLength() {
		return fmt.Errorf("hidden word %q has %d letters, grid %s fits at most %d", hidden, n, dims, dims.MaxWordLength())
	}
	return nil
}

// withoutHidden removes the hidden word from the corpus so selection never picks it.
func withoutHidden(corpus []string, hidden string) []string {
	if hidden == "" {
		return corpus
	}
	return wordlist.Filter(corpus, wordlist.Excluding(hidden))
}

// placementWords is the word set handed to the engine: the visible selection
// plus the hidden word. The visible slice is never modified.
func placementWords(visible []string, hidden string) []string {
	out := make([]string, 0, len(visible)+1)
	out = append(out, visible...)
	if hidden != "" {
		out = append(out, hidden)
	}
	return out
}
