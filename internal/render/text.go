package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/wordsearch/internal/model"
)

const terminalWidthBackup = 80

// TextOptions controls Text output.
type TextOptions struct {
	// Reveal highlights solution cells and prints the hidden word.
	Reveal bool
	Color  bool
	// Width is the available line width; 0 means 80 columns.
	Width int
}

// Text writes a human-readable puzzle: grid, then the word list in columns.
func Text(w io.Writer, result model.Result, opts TextOptions) error {
	var marks Marks
	if opts.Reveal {
		marks = MarkPlacements(result.Solution, result.Hidden)
	}
	title := fmt.Sprintf("Word search %dx%d, %d words", result.Width, result.Height, len(result.Words))
	if opts.Color {
		title = titleStyle.Render(title)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", title, Grid(result.Grid, marks, opts.Color)); err != nil {
		return err
	}
	width := opts.Width
	if width <= 0 {
		width = terminalWidthBackup
	}
	for _, line := range Columns(result.Words, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if opts.Reveal && result.Hidden != "" {
		if _, err := fmt.Fprintf(w, "\nHidden word: %s\n", result.Hidden); err != nil {
			return err
		}
	}
	return nil
}

// Columns lays out words alphabetically in as many columns as fit width.
func Columns(words []string, width int) []string {
	if len(words) == 0 {
		return nil
	}
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	colWidth := 0
	for _, w := range sorted {
		colWidth = max(colWidth, runewidth.StringWidth(w))
	}
	colWidth += 2
	cols := max(1, width/colWidth)
	rows := (len(sorted) + cols - 1) / cols

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(sorted) {
				break
			}
			b.WriteString(runewidth.FillRight(sorted[i], colWidth))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
