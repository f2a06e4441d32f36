package ui

import (
	"sync"
	"time"
)

// Debouncer runs the last function handed to it once calls stop arriving for
// its duration. With a max wait, a steady stream of calls still runs the
// latest function at least that often. The reader uses it to batch progress
// saves.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	pending  func()
	duration time.Duration
	maxWait  time.Duration
	first    time.Time // when the pending burst started
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// NewThrottledDebouncer creates a debouncer that also fires once maxWait has
// passed since the first call of a burst.
func NewThrottledDebouncer(duration, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		maxWait:  maxWait,
	}
}

// Debounce schedules fn after the debounce duration. Rapid successive calls
// reset the timer and replace fn, but never past the max wait.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	now := time.Now()
	if d.pending == nil {
		d.first = now
	}
	d.pending = fn

	delay := d.duration
	if d.maxWait > 0 {
		if left := d.maxWait - now.Sub(d.first); left < delay {
			delay = max(left, 0)
		}
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel cancels any pending debounced function call
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Flush runs a pending call now, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Immediate executes the function immediately and cancels any pending call
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}
