// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"
	"unicode/utf8"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FitsLength keeps words of at most max runes.
func FitsLength(max int) FilterFunc {
	return func(word string) bool {
		return word != "" && utf8.RuneCountInString(word) <= max
	}
}

// Excluding drops every occurrence of the given word, ignoring case.
func Excluding(word string) FilterFunc {
	return func(w string) bool {
		return !strings.EqualFold(w, word)
	}
}

// Filter returns a new slice holding the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}

// FilterByLength keeps words that fit a grid whose shorter side is max.
func FilterByLength(words []string, max int) []string {
	return Filter(words, FitsLength(max))
}
