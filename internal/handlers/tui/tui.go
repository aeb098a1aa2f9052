package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard on the terminal until the operator quits or ctx ends.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
