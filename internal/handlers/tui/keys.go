package tui

import (
	"github.com/gabapcia/transferscope/internal/dashboard"

	tea "github.com/charmbracelet/bubbletea"
)

var keyCodes = map[tea.KeyType]dashboard.KeyCode{
	tea.KeyEnter:     dashboard.KeyEnter,
	tea.KeyEsc:       dashboard.KeyEsc,
	tea.KeyBackspace: dashboard.KeyBackspace,
	tea.KeyUp:        dashboard.KeyUp,
	tea.KeyDown:      dashboard.KeyDown,
	tea.KeyTab:       dashboard.KeyTab,
	tea.KeyShiftTab:  dashboard.KeyShiftTab,
	tea.KeyCtrlC:     dashboard.KeyCtrlC,
}

// toKeys translates a terminal key press. Pasted text arrives as a single
// message and becomes one key per rune.
func toKeys(msg tea.KeyMsg) []dashboard.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]dashboard.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, dashboard.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []dashboard.Key{dashboard.RuneKey(' ')}
	}

	if code, ok := keyCodes[msg.Type]; ok {
		return []dashboard.Key{dashboard.CodeKey(code)}
	}
	return nil
}
