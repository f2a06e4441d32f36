// Package reader is the terminal UI that flashes words one at a time.
package reader

import (
	"time"

	"corrodedrsvp/cmd/corroded_rsvp/ui"
	"corrodedrsvp/internal/logging"
	"corrodedrsvp/internal/playback"
	"corrodedrsvp/internal/source"
	"corrodedrsvp/internal/watch"
	"corrodedrsvp/internal/words"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Position is what gets persisted when the reader moves.
type Position struct {
	Index    int
	Total    int
	WPM      int
	Finished bool
}

// Options configure a Model.
type Options struct {
	Title        string
	Focus        bool
	Caret        bool
	ShowProgress bool
	ShowHelp     bool
	Autoplay     bool
	Styles       ui.Styles

	// Persist receives positions, batched by SaveDebounce and written at
	// least that often while reading. May be nil.
	Persist      func(Position)
	SaveDebounce time.Duration

	// Reloads delivers new contents of a followed file. May be nil.
	Reloads <-chan watch.Event
}

// Model is the bubbletea model for a reading session.
type Model struct {
	session  *playback.Session
	opts     Options
	styles   ui.Styles
	keys     keyMap
	help     help.Model
	progress progress.Model
	saver    *ui.Debouncer
	now      func() time.Time

	width  int
	height int

	// seq invalidates ticks scheduled before the last timing change
	seq int

	err      error
	quitting bool
}

// tickMsg fires when the current word's delay should have elapsed.
type tickMsg struct {
	seq int
	at  time.Time
}

// reloadMsg carries a followed file's new contents.
type reloadMsg watch.Event

// reloadsClosedMsg reports that the follow channel closed.
type reloadsClosedMsg struct{}

// New creates a reader over session.
func New(session *playback.Session, opts Options) Model {
	h := help.New()
	h.ShowAll = opts.ShowHelp

	bar := progress.New(
		progress.WithSolidFill(string(opts.Styles.Theme.Accent)),
		progress.WithoutPercentage(),
	)

	saveDelay := opts.SaveDebounce
	if saveDelay <= 0 {
		saveDelay = 2 * time.Second
	}

	return Model{
		session:  session,
		opts:     opts,
		styles:   opts.Styles,
		keys:     defaultKeyMap(),
		help:     h,
		progress: bar,
		saver:    ui.NewThrottledDebouncer(saveDelay, saveDelay),
		now:      time.Now,
	}
}

// Session exposes the reading state, e.g. after the program exits.
func (m Model) Session() *playback.Session { return m.session }

// Init starts playback and the reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.opts.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.Title))
	}
	if m.opts.Autoplay && m.session.Paused() {
		// Init cannot return a changed model, so the first tick carries seq 0
		m.session.TogglePause(m.now())
		cmds = append(cmds, m.tickAfter(m.session.Due(m.now()), m.seq))
	}
	if m.opts.Reloads != nil {
		cmds = append(cmds, waitForReload(m.opts.Reloads))
	}
	return tea.Batch(cmds...)
}

func waitForReload(ch <-chan watch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return reloadsClosedMsg{}
		}
		return reloadMsg(ev)
	}
}

func (m Model) tickAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg{seq: seq, at: t}
	})
}

// reschedule drops any outstanding tick and, while playing, arms a new one.
func (m *Model) reschedule() tea.Cmd {
	m.seq++
	if m.session.Paused() || m.session.Finished() {
		return nil
	}
	return m.tickAfter(m.session.Due(m.now()), m.seq)
}

func (m Model) position() Position {
	return Position{
		Index:    m.session.Index(),
		Total:    m.session.Len(),
		WPM:      m.session.WPM(),
		Finished: m.session.Finished(),
	}
}

// queueSave hands the current position to the debounced persister.
func (m Model) queueSave() {
	if m.opts.Persist == nil {
		return
	}
	pos := m.position()
	persist := m.opts.Persist
	m.saver.Debounce(func() { persist(pos) })
}

// saveNow persists immediately, dropping anything queued.
func (m Model) saveNow() {
	if m.opts.Persist == nil {
		return
	}
	pos := m.position()
	m.saver.Immediate(func() { m.opts.Persist(pos) })
}

// Flush writes a queued position now. Call it after the program exits.
func (m Model) Flush() { m.saver.Flush() }

// Update handles input, ticks and reloads.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		m.progress.Width = max(m.width-4, 0)
		m.help.Width = m.width
		logging.UI("resize %dx%d", m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if m.session.Tick(msg.at) {
			m.queueSave()
			if m.session.Finished() {
				logging.Playback("finished after %d words", m.session.Advanced())
				m.saveNow()
			}
		}
		return m, m.reschedule()

	case reloadMsg:
		return m.handleReload(watch.Event(msg))

	case reloadsClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleReload(ev watch.Event) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Reloads)
	if ev.Err != nil {
		m.err = ev.Err
		return m, next
	}
	m.err = nil
	m.session.Replace(words.Split(source.Normalize(ev.Text)), m.now())
	logging.UI("reloaded: %d words, at %d", m.session.Len(), m.session.Index())
	m.queueSave()
	return m, tea.Batch(next, m.reschedule())
}
