package reader

import (
	"fmt"
	"strings"
	"time"

	"corrodedrsvp/internal/words"

	"github.com/charmbracelet/lipgloss"
)

// finishedText is shown centred once every word has been read.
const finishedText = "Finished!"

// View renders the screen: the word in the middle, status at the bottom.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	height := m.height
	if height < 3 {
		height = 3
	}
	rows := make([]string, height)
	center := height / 2

	word, caret := m.renderWord()
	rows[center] = word
	if caret != "" && center+1 < height {
		rows[center+1] = caret
	}

	bottom := m.renderBottom()
	start := height - len(bottom)
	if start <= center+1 {
		// too short for everything; the status line wins
		bottom = bottom[len(bottom)-1:]
		start = height - 1
	}
	for i, line := range bottom {
		rows[start+i] = line
	}

	return strings.Join(rows, "\n")
}

// renderWord returns the word row and, in focus mode, the caret row.
func (m Model) renderWord() (string, string) {
	w, ok := m.session.Current()
	if !ok {
		pad := max(m.width/2-len(finishedText)/2, 0)
		return strings.Repeat(" ", pad) + m.styles.Finished.Render(finishedText), ""
	}

	p := words.Layout(w, m.width, m.opts.Focus)
	lead := strings.Repeat(" ", p.Start)
	if !m.opts.Focus || w.Graphemes == 0 {
		return lead + m.styles.Word.Render(w.Text), ""
	}

	before, focus, after := w.Parts()
	line := lead + m.styles.Word.Render(before) + m.styles.Focus.Render(focus) + m.styles.Word.Render(after)
	if !m.opts.Caret {
		return line, ""
	}
	return line, strings.Repeat(" ", p.Center) + m.styles.Caret.Render("^")
}

// renderBottom returns the progress bar, expanded help and status lines.
func (m Model) renderBottom() []string {
	var lines []string
	if m.opts.ShowProgress && m.width > 4 {
		lines = append(lines, "  "+m.progress.ViewAs(m.session.Progress()))
	}
	if m.help.ShowAll {
		lines = append(lines, strings.Split(m.styles.Help.Render(m.help.View(m.keys)), "\n")...)
	}
	lines = append(lines, m.statusLine())
	return lines
}

// statusLine is "WPM: n | Word: i/total | Status: ..." followed by key hints.
func (m Model) statusLine() string {
	st := m.session.Status()
	state := m.styles.Paused.Render(st.StateLabel())
	if !st.Paused {
		state = m.styles.Playing.Render(st.StateLabel())
	}
	position := st.Position
	if st.Finished {
		position = st.Total
	}

	line := m.styles.Status.Render(fmt.Sprintf("WPM: %d | Word: %d/%d | Status: ", st.WPM, position, st.Total)) +
		state +
		m.styles.Status.Render(fmt.Sprintf(" | Left: %s", m.session.Remaining().Round(time.Second)))
	if m.err != nil {
		line += " | " + m.styles.Error.Render("reload failed: "+m.err.Error())
	} else if !m.help.ShowAll {
		line += m.styles.Status.Render(" | ") + m.help.ShortHelpView(m.keys.ShortHelp())
	}

	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
