package logview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the log view's state
type Model struct {
	width  int
	height int
	lines  []string // newest first
}

// New creates a new log view model
func New() Model {
	return Model{
		width:  80,
		height: 24,
		lines:  make([]string, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// AddLine prepends a timestamped log line
func (m *Model) AddLine(at time.Time, line string) {
	entry := fmt.Sprintf("[%s] %s", at.Format("2006-01-02 15:04:05"), line)
	m.lines = append([]string{entry}, m.lines...)
	m.trim()
}

// trim drops lines that can no longer be shown.
// -2 for borders, -1 for the title line.
func (m *Model) trim() {
	max := m.height - 3
	if max < 1 {
		max = 1
	}
	if len(m.lines) > max {
		m.lines = m.lines[:max]
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trim()
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(m.width - 2).
		Height(m.height - 2).
		Padding(0, 1)

	title := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Render("Log")

	contentWidth := m.width - 2 - 2 // border, padding
	if contentWidth < 0 {
		contentWidth = 0
	}
	contentHeight := (m.height - 2) - 1
	if contentHeight < 0 {
		contentHeight = 0
	}

	var b strings.Builder
	b.WriteString(title)

	if contentHeight > 0 {
		b.WriteRune('\n')
		// Oldest of the visible lines first, scrolling upward
		for i := 0; i < contentHeight && i < len(m.lines); i++ {
			line := m.lines[len(m.lines)-1-i]
			if len(line) > contentWidth {
				line = line[:contentWidth]
			}
			b.WriteString(line)
			if i < contentHeight-1 && i < len(m.lines)-1 {
				b.WriteRune('\n')
			}
		}
	}

	return style.Render(b.String())
}
