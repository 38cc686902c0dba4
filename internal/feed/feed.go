// Package feed maintains the bounded, newest-first window of live events
// backing the real-time dashboard view. The window is ordered by arrival,
// not by timestamp: the upstream stream may deliver out of order and the
// feed deliberately does not re-sort, keeping ingestion O(1).
//
// A Feed belongs to a single viewer session and a single writer; it does
// no locking of its own. Serve concurrent sessions with one Feed each.
package feed

import (
	"github.com/emergence-sim/emergence/internal/events"
)

// DefaultCapacity is the default bound on the live window.
const DefaultCapacity = 100

// HiddenCounts reports how many buffered events the current toggles hide,
// so the UI can show an "N hidden" affordance without revealing them.
type HiddenCounts struct {
	// Background is the number of hidden work/idle events
	Background int `json:"background"`
	// Noisy is the number of hidden system-noise events
	Noisy int `json:"noisy"`
}

// Feed accumulates live events into a bounded most-recent-first window.
type Feed struct {
	capacity  int
	window    []*events.Event // newest first, arrival order
	buffered  map[string]bool // IDs currently in the window
	live      bool
	connected bool
}

// New creates a feed with the given window capacity. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		buffered: make(map[string]bool),
	}
}

// OnEvent prepends a new event to the window and truncates to capacity,
// reporting whether the event was newly buffered. Events already buffered
// (same ID) are dropped, which makes overlapping re-fetches idempotent.
// The first real event flips the feed live.
func (f *Feed) OnEvent(e *events.Event) bool {
	if e == nil || f.buffered[e.ID] {
		return false
	}

	f.window = append([]*events.Event{e}, f.window...)
	f.buffered[e.ID] = true
	f.live = true

	// Hard memory bound: discard the oldest entries beyond capacity
	for len(f.window) > f.capacity {
		last := f.window[len(f.window)-1]
		delete(f.buffered, last.ID)
		f.window = f.window[:len(f.window)-1]
	}
	return true
}

// Events returns a copy of the buffered window, newest first.
func (f *Feed) Events() []*events.Event {
	out := make([]*events.Event, len(f.window))
	copy(out, f.window)
	return out
}

// Visible returns the buffered events that pass the visibility toggles,
// preserving window order (newest first).
func (f *Feed) Visible(showBackground, showSystem bool) []*events.Event {
	var out []*events.Event
	for _, e := range f.window {
		if events.IsVisible(e.Type, showBackground, showSystem) {
			out = append(out, e)
		}
	}
	return out
}

// Hidden counts the buffered background and noisy events that the current
// toggles keep out of view. Revealed classes count as zero.
func (f *Feed) Hidden(showBackground, showSystem bool) HiddenCounts {
	var counts HiddenCounts
	for _, e := range f.window {
		switch events.Classify(e.Type) {
		case events.ClassBackground:
			if !showBackground {
				counts.Background++
			}
		case events.ClassNoisy:
			if !showSystem {
				counts.Noisy++
			}
		}
	}
	return counts
}

// Len reports the number of buffered events.
func (f *Feed) Len() int {
	return len(f.window)
}

// Live reports whether the feed has received at least one real event,
// distinguishing "pre-launch" from "has data".
func (f *Feed) Live() bool {
	return f.live
}

// Connected reports the last known state of the upstream subscription.
func (f *Feed) Connected() bool {
	return f.connected
}

// SetConnected records the upstream subscription state. The feed keeps its
// last-known window on disconnect and performs no retries; reconnection is
// the transport's job.
func (f *Feed) SetConnected(connected bool) {
	f.connected = connected
}
