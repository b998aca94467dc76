package footer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the footer's state
type Model struct {
	width   int
	packets uint64
}

// New creates a new footer model
func New() Model {
	return Model{
		width: 80,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetPackets updates the sent-packet counter
func (m *Model) SetPackets(n uint64) {
	m.packets = n
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	left := fmt.Sprintf("Packets: %d", m.packets)
	right := "s: send now | b: scheduler on/off | r: reload config | q: quit"

	style := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("250")).
		Width(m.width)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}
