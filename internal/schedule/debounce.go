package schedule

import (
	"strings"
	"sync"
	"time"

	"github.com/hearsay-live/hearsay/internal/intent"
)

// Flush carries everything accumulated since the previous firing.
type Flush struct {
	Text              string
	HasDispute        bool
	HasExplicitVerify bool
}

// Debouncer coalesces transcript fragments into extraction-sized batches.
// Every new fragment cancels the pending timer and reschedules with a
// fragment-appropriate delay; an explicit verify cue flushes immediately.
type Debouncer struct {
	mu      sync.Mutex
	delays  Delays
	flush   func(Flush)
	timer   *time.Timer
	pending []string
	dispute bool
	verify  bool
	stopped bool
}

// NewDebouncer creates a debouncer that calls flush with each accumulated
// batch. flush is invoked from a timer goroutine (or the caller's goroutine
// on an immediate flush) and must be safe for that.
func NewDebouncer(delays Delays, flush func(Flush)) *Debouncer {
	return &Debouncer{
		delays: delays,
		flush:  flush,
	}
}

// Add appends a fragment to the pending buffer and resets the timer.
func (d *Debouncer) Add(fragment string) {
	trimmed := strings.TrimSpace(fragment)

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	if trimmed != "" {
		d.pending = append(d.pending, trimmed)
	}
	d.dispute = d.dispute || intent.IsDisputeCue(trimmed)
	d.verify = d.verify || intent.IsExplicitVerifyCue(trimmed)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	delay := DelayFor(fragment, d.verify, d.delays)
	if delay == 0 {
		f, ok := d.takeLocked()
		d.mu.Unlock()
		if ok {
			d.flush(f)
		}
		return
	}

	d.timer = time.AfterFunc(delay, d.fire)
	d.mu.Unlock()
}

// Flush forces an immediate flush of any pending text.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	f, ok := d.takeLocked()
	d.mu.Unlock()
	if ok {
		d.flush(f)
	}
}

// Stop cancels any pending timer and drops buffered text.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.dispute = false
	d.verify = false
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	f, ok := d.takeLocked()
	d.mu.Unlock()
	if ok {
		d.flush(f)
	}
}

// takeLocked drains the pending buffer and flags. Caller holds the mutex.
func (d *Debouncer) takeLocked() (Flush, bool) {
	if len(d.pending) == 0 && !d.dispute && !d.verify {
		return Flush{}, false
	}
	f := Flush{
		Text:              strings.Join(d.pending, " "),
		HasDispute:        d.dispute,
		HasExplicitVerify: d.verify,
	}
	d.pending = nil
	d.dispute = false
	d.verify = false
	return f, true
}
