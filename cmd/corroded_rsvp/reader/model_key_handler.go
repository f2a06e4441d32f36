package reader

import (
	"corrodedrsvp/internal/logging"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg maps a key press onto the reading session.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	s := m.session

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.saveNow()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		s.TogglePause(now)
		logging.Playback("toggle -> %s at %d", s.Status().StateLabel(), s.Index())

	case key.Matches(msg, m.keys.Next):
		s.Next(now)
		m.queueSave()

	case key.Matches(msg, m.keys.Prev):
		s.Prev(now)
		m.queueSave()

	case key.Matches(msg, m.keys.Faster):
		s.SpeedUp()
		m.queueSave()

	case key.Matches(msg, m.keys.Slower):
		s.SlowDown()
		m.queueSave()

	case key.Matches(msg, m.keys.Restart):
		s.Restart(now)
		m.queueSave()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	default:
		return m, nil
	}

	return m, m.reschedule()
}
