// Package playback holds the reading state of an RSVP session: which word is
// showing, how fast words advance and whether the reader is paused.
//
// Session is a plain value driven by explicit timestamps so the terminal UI
// can schedule ticks however it likes and tests can use a fake clock.
package playback

import (
	"time"

	"corrodedrsvp/internal/words"
)

const (
	// DefaultWPM is the starting speed when none is configured.
	DefaultWPM = 250
	// MinWPM is the slowest speed SlowDown will reach.
	MinWPM = 25
	// DefaultMaxWPM caps SpeedUp when Options.MaxWPM is zero.
	DefaultMaxWPM = 2000
	// WPMStep is the change applied by SpeedUp and SlowDown.
	WPMStep = 25
	// IdleInterval is how often a paused reader needs to be redrawn.
	IdleInterval = 100 * time.Millisecond
)

// Options tune a Session.
type Options struct {
	WPM    int
	MaxWPM int
	Start  int // resume index; ignored when out of range
}

// Session is the reading state machine.
type Session struct {
	words       []words.Word
	index       int
	wpm         int
	maxWPM      int
	paused      bool
	lastAdvance time.Time
	advanced    int // words shown by Tick or Next since New
}

// New creates a paused session over ws.
func New(ws []words.Word, opts Options, now time.Time) *Session {
	s := &Session{
		words:       ws,
		wpm:         opts.WPM,
		maxWPM:      opts.MaxWPM,
		paused:      true,
		lastAdvance: now,
	}
	if s.maxWPM <= 0 {
		s.maxWPM = DefaultMaxWPM
	}
	if s.maxWPM < MinWPM {
		s.maxWPM = MinWPM
	}
	if s.wpm <= 0 {
		s.wpm = DefaultWPM
	}
	// a slow starting speed is kept; MinWPM only bounds SlowDown
	s.wpm = clamp(s.wpm, 1, s.maxWPM)
	if opts.Start > 0 && opts.Start < len(ws) {
		s.index = opts.Start
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Delay is the time each word stays on screen.
func (s *Session) Delay() time.Duration {
	return time.Minute / time.Duration(s.wpm)
}

// Due returns how long until the next automatic advance. It is zero when an
// advance is overdue and IdleInterval while paused.
func (s *Session) Due(now time.Time) time.Duration {
	if s.paused {
		return IdleInterval
	}
	d := s.Delay() - now.Sub(s.lastAdvance)
	if d < 0 {
		return 0
	}
	return d
}

// TogglePause flips between playing and paused and restarts the word timer.
func (s *Session) TogglePause(now time.Time) {
	s.paused = !s.paused
	s.lastAdvance = now
}

// Next steps forward one word, stopping on the last word.
func (s *Session) Next(now time.Time) {
	if s.index+1 < len(s.words) {
		s.index++
		s.advanced++
	}
	s.lastAdvance = now
}

// Prev steps back one word, stopping on the first. From the finished state it
// returns to the last word.
func (s *Session) Prev(now time.Time) {
	if s.index > 0 {
		s.index--
	}
	s.lastAdvance = now
}

// Restart rewinds to the first word and pauses.
func (s *Session) Restart(now time.Time) {
	s.index = 0
	s.paused = true
	s.lastAdvance = now
}

// SpeedUp raises the speed by WPMStep up to the maximum.
func (s *Session) SpeedUp() {
	s.wpm = clamp(s.wpm+WPMStep, MinWPM, s.maxWPM)
}

// SlowDown lowers the speed by WPMStep down to MinWPM.
func (s *Session) SlowDown() {
	s.wpm = clamp(s.wpm-WPMStep, MinWPM, s.maxWPM)
}

// Tick advances to the next word once its delay has elapsed. Passing the last
// word finishes the session. It reports whether the visible state changed.
func (s *Session) Tick(now time.Time) bool {
	if s.paused || s.Finished() {
		return false
	}
	if now.Sub(s.lastAdvance) < s.Delay() {
		return false
	}
	if s.index+1 < len(s.words) {
		s.index++
		s.advanced++
		s.lastAdvance = now
		return true
	}
	s.paused = true
	s.index = len(s.words)
	return true
}

// Replace swaps in a new word list, keeping the position clamped to it.
func (s *Session) Replace(ws []words.Word, now time.Time) {
	finished := s.Finished()
	s.words = ws
	switch {
	case len(ws) == 0:
		s.index = 0
	case finished && s.index < len(ws):
		// more text arrived after the end; carry on from there
	case s.index >= len(ws):
		s.index = len(ws) - 1
	}
	s.lastAdvance = now
}

// Finished reports whether every word has been shown.
func (s *Session) Finished() bool {
	return s.index >= len(s.words)
}

// Current returns the word on screen. ok is false once finished.
func (s *Session) Current() (w words.Word, ok bool) {
	if s.Finished() {
		return words.Word{}, false
	}
	return s.words[s.index], true
}

// Index is the zero-based position of the current word.
func (s *Session) Index() int { return s.index }

// Len is the number of words in the session.
func (s *Session) Len() int { return len(s.words) }

// WPM is the current speed.
func (s *Session) WPM() int { return s.wpm }

// Paused reports whether automatic advance is stopped.
func (s *Session) Paused() bool { return s.paused }

// Advanced counts forward steps taken since the session started.
func (s *Session) Advanced() int { return s.advanced }

// Progress is the fraction of words already passed, in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.words) == 0 {
		return 1
	}
	if s.Finished() {
		return 1
	}
	return float64(s.index) / float64(len(s.words))
}

// Remaining estimates how long the rest of the text takes at the current speed.
func (s *Session) Remaining() time.Duration {
	left := len(s.words) - s.index
	if left <= 0 {
		return 0
	}
	return time.Duration(left) * s.Delay()
}

// Status is a snapshot for rendering.
type Status struct {
	WPM      int
	Position int // one-based
	Total    int
	Paused   bool
	Finished bool
}

// Status returns the current snapshot.
func (s *Session) Status() Status {
	return Status{
		WPM:      s.wpm,
		Position: s.index + 1,
		Total:    len(s.words),
		Paused:   s.paused,
		Finished: s.Finished(),
	}
}

// StateLabel is "Paused" or "Playing".
func (st Status) StateLabel() string {
	if st.Paused {
		return "Paused"
	}
	return "Playing"
}
