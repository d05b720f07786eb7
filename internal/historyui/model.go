// Package historyui provides the Bubble Tea browser for saved puzzles.
package historyui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/render"
)

const (
	tableWidth    = 44
	previewWidth  = 40
	previewHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	paneStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Loader fetches a stored puzzle by id.
type Loader func(id int64) (model.Result, error)

type keyMap struct {
	Quit key.Binding
	Play key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
	Play: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
}

// Model lists saved puzzles and previews the highlighted one.
type Model struct {
	puzzles []model.PuzzleSummary
	load    Loader

	table     table.Model
	preview   viewport.Model
	previewID int64
	errMsg    string
	selected  int64

	width  int
	height int
}

// NewModel builds a browser over puzzles, newest last as ListPuzzles returns
// them. The cursor starts on the newest puzzle.
func NewModel(puzzles []model.PuzzleSummary, load Loader) *Model {
	m := &Model{
		puzzles: puzzles,
		load:    load,
		table:   buildTable(puzzles),
		preview: viewport.New(previewWidth, previewHeight),
	}
	if len(puzzles) > 0 {
		m.table.SetCursor(len(puzzles) - 1)
	}
	m.refreshPreview()
	return m
}

// Selected returns the id chosen with enter, or 0 when the user quit.
func (m *Model) Selected() int64 {
	return m.selected
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Play):
			if id := m.currentID(); id > 0 {
				m.selected = id
				return m, tea.Quit
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.refreshPreview()
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.puzzles) == 0 {
		return "No puzzles found.\n" + m.renderFooter()
	}
	left := paneStyle.Render(m.table.View())
	right := paneStyle.Render(m.preview.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return strings.Join([]string{headerStyle.Render("Saved puzzles"), body, m.renderFooter()}, "\n")
}

func (m *Model) renderFooter() string {
	help := fmt.Sprintf("Move: up/down  %s: %s  %s: %s",
		keys.Play.Help().Key, keys.Play.Help().Desc,
		keys.Quit.Help().Key, keys.Quit.Help().Desc)
	if m.errMsg != "" {
		return headerStyle.Render(help) + "\n" + errorStyle.Render(m.errMsg)
	}
	return headerStyle.Render(help)
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	frameW, frameH := paneStyle.GetFrameSize()
	bodyHeight := max(1, m.height-2-frameH)
	m.table.SetHeight(bodyHeight)
	m.preview.Width = max(10, m.width-tableWidth-2*frameW)
	m.preview.Height = bodyHeight
	m.previewID = 0
	m.refreshPreview()
}

func (m *Model) currentID() int64 {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (m *Model) refreshPreview() {
	id := m.currentID()
	if id == 0 || id == m.previewID {
		return
	}
	m.previewID = id
	result, err := m.load(id)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load puzzle %d: %v", id, err)
		m.preview.SetContent("")
		return
	}
	m.errMsg = ""
	m.preview.SetContent(renderPreview(result, m.preview.Width))
	m.preview.GotoTop()
}

func renderPreview(result model.Result, width int) string {
	if width <= 0 {
		width = previewWidth
	}
	lines := []string{render.Grid(result.Grid, nil, true), ""}
	lines = append(lines, render.Columns(result.Words, width)...)
	return strings.Join(lines, "\n")
}

func buildTable(puzzles []model.PuzzleSummary) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Created", Width: 16},
		{Title: "Size", Width: 7},
		{Title: "Words", Width: 5},
		{Title: "Hidden", Width: 6},
	}
	rows := make([]table.Row, 0, len(puzzles))
	for _, p := range puzzles {
		hidden := ""
		if p.Hidden {
			hidden = "yes"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			humanize.Time(p.CreatedAt),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			strconv.Itoa(p.WordCount),
			hidden,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+2),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#C89A3A")).
		Bold(true)
	return styles
}
