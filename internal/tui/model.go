// Package tui provides the Bubble Tea word-hunt interface.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordsearch/internal/model"
	"github.com/verte-zerg/wordsearch/internal/render"
)

var (
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Strikethrough(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check word")),
}

// Model implements the Bubble Tea word-hunt UI.
type Model struct {
	result     model.Result
	placements map[string]model.Placement
	found      map[string]bool
	hiddenSeen bool
	input      textinput.Model
	notice     string

	width  int
	height int
}

// NewModel builds a game over result. placements must locate every visible
// word and, when present, the hidden word.
func NewModel(result model.Result, placements []model.Placement) *Model {
	byWord := make(map[string]model.Placement, len(placements))
	for _, p := range placements {
		byWord[strings.ToLower(p.Word)] = p
	}
	input := textinput.New()
	input.Prompt = "Word: "
	input.Placeholder = "type a word and press enter"
	input.CharLimit = max(result.Width, result.Height)
	input.Focus()
	return &Model{
		result:     result,
		placements: byWord,
		found:      map[string]bool{},
		input:      input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			m.guess(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) guess(raw string) {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return
	}
	if m.result.Hidden != "" && word == strings.ToLower(m.result.Hidden) {
		if m.hiddenSeen {
			m.notice = "You already found the hidden word."
			return
		}
		m.hiddenSeen = true
		m.notice = fmt.Sprintf("Hidden word found: %s!", m.result.Hidden)
		return
	}
	if !m.isVisible(word) {
		m.notice = fmt.Sprintf("%q is not in this puzzle.", raw)
		return
	}
	if m.found[word] {
		m.notice = fmt.Sprintf("%q was already found.", raw)
		return
	}
	m.found[word] = true
	m.notice = fmt.Sprintf("Found %s.", raw)
	if m.Solved() {
		m.notice = "All words found!"
	}
}

func (m *Model) isVisible(word string) bool {
	for _, w := range m.result.Words {
		if strings.ToLower(w) == word {
			return true
		}
	}
	return false
}

// Solved reports whether every visible word has been found.
func (m *Model) Solved() bool {
	return len(m.found) == len(m.result.Words)
}

func (m *Model) foundPlacements() []model.Placement {
	out := make([]model.Placement, 0, len(m.found)+1)
	for word := range m.found {
		if p, ok := m.placements[word]; ok {
			out = append(out, p)
		}
	}
	if m.hiddenSeen {
		if p, ok := m.placements[strings.ToLower(m.result.Hidden)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	grid := render.Grid(m.result.Grid, render.MarkPlacements(m.foundPlacements(), m.result.Hidden), true)
	content := lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", m.renderWords())
	parts := []string{content, "", m.input.View()}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	body := strings.Join(parts, "\n")
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return body + "\n" + footer
	}
	bodyHeight := m.height - 1
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body) + "\n" +
		lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *Model) renderWords() string {
	words := append([]string(nil), m.result.Words...)
	sort.Strings(words)
	lines := make([]string, 0, len(words))
	for _, w := range words {
		if m.found[strings.ToLower(w)] {
			lines = append(lines, doneStyle.Render(w))
			continue
		}
		lines = append(lines, wordStyle.Render(w))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Found %d/%d", len(m.found), len(m.result.Words))}
	if m.result.Hidden != "" {
		if m.hiddenSeen {
			segments = append(segments, "Hidden word found")
		} else {
			segments = append(segments, "A hidden word is in the grid")
		}
	}
	segments = append(segments, keys.Quit.Help().Key+" "+keys.Quit.Help().Desc)
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}
