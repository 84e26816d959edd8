// Package transcript keeps a time-bounded buffer of finalized speech
// fragments, from which the recent-context string supplied to extraction
// and verification calls is derived.
package transcript

import (
	"strings"
	"sync"
	"time"

	"github.com/hearsay-live/hearsay/internal/model"
)

// Window is an ordered, duration-bounded fragment buffer. It owns its
// fragments exclusively; callers only get derived strings back.
type Window struct {
	mu       sync.Mutex
	duration time.Duration
	frags    []model.TranscriptFragment
}

// NewWindow creates a window retaining fragments for the given duration.
func NewWindow(duration time.Duration) *Window {
	return &Window{duration: duration}
}

// Append records a fragment at the given time. Empty text is ignored.
func (w *Window) Append(text string, now time.Time) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pruneLocked(now)
	w.frags = append(w.frags, model.TranscriptFragment{Text: trimmed, Timestamp: now})
}

// Recent returns the fragments still inside the window joined into a
// single context string, oldest first.
func (w *Window) Recent(now time.Time) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pruneLocked(now)

	if len(w.frags) == 0 {
		return ""
	}
	parts := make([]string, len(w.frags))
	for i, f := range w.frags {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// Len reports the number of retained fragments.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frags)
}

// pruneLocked drops fragments older than the window. Caller holds the
// mutex. Fragments are appended in time order, so the retained suffix is
// contiguous.
func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.duration)
	keep := 0
	for keep < len(w.frags) && !w.frags[keep].Timestamp.After(cutoff) {
		keep++
	}
	if keep > 0 {
		w.frags = append(w.frags[:0], w.frags[keep:]...)
	}
}
