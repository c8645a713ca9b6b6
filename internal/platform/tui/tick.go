// Package tui provides the Bubble Tea integration for watching episodes.
// It drives the pilot-step loop at the simulation frequency and renders the
// play field into the terminal; the simulation itself never depends on it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// given simulation frequency.
func tickCmd(frequency int) tea.Cmd {
	interval := time.Second / time.Duration(frequency)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
