package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one report column. Numeric columns are right aligned.
type column struct {
	title   string
	numeric bool
}

// report is a plain-text table sized to its widest cell, measured in
// terminal cells so wide runes from non-Latin word lists line up.
type report struct {
	columns []column
	rows    [][]string
}

func newReport(columns ...column) *report {
	return &report{columns: columns}
}

// add appends a row. Missing trailing cells render empty and extra cells are dropped.
func (r *report) add(cells ...string) {
	row := make([]string, len(r.columns))
	copy(row, cells)
	r.rows = append(r.rows, row)
}

func (r *report) widths() []int {
	widths := make([]int, len(r.columns))
	for i, c := range r.columns {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range r.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// lines renders the header followed by every row.
func (r *report) lines() []string {
	if len(r.columns) == 0 {
		return nil
	}
	widths := r.widths()
	header := make([]string, len(r.columns))
	for i, c := range r.columns {
		header[i] = c.title
	}
	out := make([]string, 0, len(r.rows)+1)
	out = append(out, r.line(header, widths))
	for _, row := range r.rows {
		out = append(out, r.line(row, widths))
	}
	return out
}

func (r *report) line(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if r.columns[i].numeric {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(parts, " ")
}

func (r *report) write(w io.Writer) error {
	for _, line := range r.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
