package risk

import (
	"fmt"
	"sync"
)

// DefaultWindowSize is the rolling-window capacity used when callers do not
// configure one.
const DefaultWindowSize = 20

// Window is a fixed-capacity FIFO of call records. One logical writer pushes
// records; any number of readers may take snapshots concurrently. Push and
// eviction happen under one lock, so a snapshot never observes a partially
// evicted window.
type Window struct {
	mu      sync.RWMutex
	records []CallRecord
	next    int
	filled  bool
}

// NewWindow creates a window holding at most capacity records. Capacity
// below 1 is a configuration error.
func NewWindow(capacity int) (*Window, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("window capacity must be >= 1, got %d", capacity)
	}
	return &Window{records: make([]CallRecord, capacity)}, nil
}

// Push appends a record, evicting the oldest one when the window is full.
func (w *Window) Push(rec CallRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records[w.next] = rec
	w.next++
	if w.next >= len(w.records) {
		w.next = 0
		w.filled = true
	}
}

// Snapshot returns the current records oldest-first. The result is a copy;
// later pushes do not affect it.
func (w *Window) Snapshot() []CallRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.filled {
		out := make([]CallRecord, w.next)
		copy(out, w.records[:w.next])
		return out
	}
	out := make([]CallRecord, 0, len(w.records))
	out = append(out, w.records[w.next:]...)
	out = append(out, w.records[:w.next]...)
	return out
}

// Len reports how many records the window currently holds.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.filled {
		return len(w.records)
	}
	return w.next
}

// Capacity reports the fixed capacity chosen at construction.
func (w *Window) Capacity() int {
	return len(w.records)
}
