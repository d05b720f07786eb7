// Package stats contains corpus statistics and table reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wordsearch/internal/model"
)

const sparkChars = " .:-=+*#%@"

// LengthHistogram counts words by rune length, shortest first.
func LengthHistogram(words []string) []model.LengthBucket {
	counts := map[int]int{}
	for _, w := range words {
		counts[utf8.RuneCountInString(w)]++
	}
	buckets := make([]model.LengthBucket, 0, len(counts))
	for length, n := range counts {
		buckets = append(buckets, model.LengthBucket{Length: length, Words: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Length < buckets[j].Length
	})
	return buckets
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderLengthTable prints the histogram with a share column.
func RenderLengthTable(w io.Writer, buckets []model.LengthBucket) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}
	total := 0
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		total += b.Words
		values[i] = float64(b.Words)
	}
	if _, err := fmt.Fprintln(w, "Word Lengths"); err != nil {
		return err
	}
	r := newReport(column{"Length", true}, column{"Words", true}, column{"Share", true})
	for _, b := range buckets {
		r.add(
			fmt.Sprintf("%d", b.Length),
			humanize.Comma(int64(b.Words)),
			fmt.Sprintf("%.1f%%", float64(b.Words)/float64(total)*100),
		)
	}
	if err := r.write(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Distribution: [%s]\n", Sparkline(values)); err != nil {
		return err
	}
	return nil
}

// RenderHistoryTable prints stored puzzle summaries.
func RenderHistoryTable(w io.Writer, puzzles []model.PuzzleSummary, age func(model.PuzzleSummary) string) error {
	if len(puzzles) == 0 {
		_, err := fmt.Fprintln(w, "No puzzles found.")
		return err
	}
	r := newReport(
		column{"ID", true},
		column{"Created", false},
		column{"Size", false},
		column{"Words", true},
		column{"Hidden", false},
		column{"Solved", false},
	)
	for _, p := range puzzles {
		r.add(
			fmt.Sprintf("%d", p.ID),
			age(p),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			fmt.Sprintf("%d", p.WordCount),
			yesNo(p.Hidden),
			yesNo(p.Solved),
		)
	}
	return r.write(w)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
