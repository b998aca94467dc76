package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aprsbeacon/beacon"
)

// Model holds the status bar's state
type Model struct {
	width     int
	status    beacon.Status
	scheduled bool // beacon loop running
}

// New creates a new status bar model
func New() Model {
	return Model{
		width:  80,
		status: beacon.StatusIdle,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetStatus updates the displayed beacon state
func (m *Model) SetStatus(s beacon.Status) {
	m.status = s
}

// SetScheduled updates the scheduler indicator
func (m *Model) SetScheduled(running bool) {
	m.scheduled = running
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	// Red for trouble, green otherwise
	bg := lipgloss.Color("#006400")
	if m.status == beacon.StatusError {
		bg = lipgloss.Color("#8b0000")
	}

	text := m.status.String()
	if m.scheduled {
		text += " | Scheduler: ON"
	} else {
		text += " | Scheduler: OFF"
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Background(bg).
		Foreground(lipgloss.Color("255")).
		Width(m.width).
		Align(lipgloss.Center)

	return style.Render(text)
}
