// Package testing builds bubbletea messages for TUI tests.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

// Key returns the message for a named key such as "enter", "down" or
// "ctrl+c". Any other name is sent as typed runes.
func Key(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// Keys maps Key over names.
func Keys(names ...string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, len(names))
	for i, name := range names {
		msgs[i] = Key(name)
	}
	return msgs
}

// Resize reports a terminal of the given size.
func Resize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: height}
}
