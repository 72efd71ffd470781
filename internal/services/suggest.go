package services

import (
	"sync"
	"time"
)

// SuggestTracker is a single-slot in-flight request tracker keyed by a
// sequence number. Issuing a new sequence supersedes, without
// cancelling, any request still in flight: Apply reports true only for
// the most recently issued sequence, so out-of-order completions are
// discarded. A debounce gate collapses keystroke bursts to at most one
// issued request per window.
type SuggestTracker struct {
	mu       sync.Mutex
	seq      uint64
	lastAt   time.Time
	debounce time.Duration
}

func NewSuggestTracker(debounce time.Duration) *SuggestTracker {
	return &SuggestTracker{debounce: debounce}
}

// Issue reserves the next request slot. The sequence always advances,
// superseding any in-flight request, but issue is false when the call
// lands inside the debounce window of the previous one.
func (t *SuggestTracker) Issue(now time.Time) (seq uint64, issue bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	issue = t.lastAt.IsZero() || now.Sub(t.lastAt) >= t.debounce
	if issue {
		t.lastAt = now
	}
	return t.seq, issue
}

// Apply reports whether a completed request with the given sequence is
// still the latest one and may be applied.
func (t *SuggestTracker) Apply(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq == t.seq
}
