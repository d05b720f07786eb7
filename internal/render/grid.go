// Package render formats puzzles for terminals.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/wordfind"
)

// Mark tags a grid cell for highlighting.
type Mark int

const (
	MarkNone Mark = iota
	MarkFound
	MarkHidden
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Marks maps cells to their highlight. Hidden wins over found.
type Marks map[Cell]Mark

var (
	letterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	foundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	hiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// MarkPlacements marks the cells of each placement. Placements of hidden are
// tagged MarkHidden.
func MarkPlacements(placements []model.Placement, hidden string) Marks {
	marks := Marks{}
	for _, p := range placements {
		mark := MarkFound
		if hidden != "" && p.Word == hidden {
			mark = MarkHidden
		}
		for _, c := range wordfind.Cells(p) {
			cell := Cell{X: c[0], Y: c[1]}
			if marks[cell] == MarkHidden {
				continue
			}
			marks[cell] = mark
		}
	}
	return marks
}

// Grid renders letters separated by single spaces, one row per line.
// Blank cells render as '.'.
func Grid(grid model.Grid, marks Marks, color bool) string {
	lines := make([]string, 0, len(grid))
	for y, row := range grid {
		cells := make([]string, 0, len(row))
		for x, letter := range row {
			if letter == "" {
				letter = "."
			}
			letter = runewidth.FillRight(letter, 1)
			cells = append(cells, styleCell(letter, marks[Cell{X: x, Y: y}], color))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func styleCell(letter string, mark Mark, color bool) string {
	if !color {
		if mark != MarkNone {
			return strings.ToUpper(letter)
		}
		return letter
	}
	switch mark {
	case MarkFound:
		return foundStyle.Render(letter)
	case MarkHidden:
		return hiddenStyle.Render(letter)
	default:
		return letterStyle.Render(letter)
	}
}
