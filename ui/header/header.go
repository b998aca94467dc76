package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the header's state
type Model struct {
	width int
}

// New creates a new header model
func New() Model {
	return Model{
		width: 80, // Default width, will be updated
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	title := "APRS Beacon"

	style := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("#d4af37")). // gold
		Width(m.width).
		Align(lipgloss.Center)

	return style.Render(title)
}
