// Package replay partitions a fixed historical window into equal-width
// time buckets driving the dashboard's scrubbable playback view. Buckets
// are half-open [start, end) and contiguous; the final bucket is closed
// so the window end itself is covered.
package replay

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/emergence-sim/emergence/internal/events"
)

// ErrInvalidWindow is returned when the replay window or bucket count is
// structurally invalid. The bucketer produces no result in that case.
var ErrInvalidWindow = errors.New("invalid replay window")

const (
	// DefaultBucketCount slices a 24h window into one-hour buckets
	DefaultBucketCount = 24
	// DefaultStoryLimit is how many "story so far" events a scrub shows
	DefaultStoryLimit = 8
)

// Bucket is one slice of the replay window.
type Bucket struct {
	// Index is the 0-based position in the window, ascending by time
	Index int `json:"index"`
	// Start is the inclusive bucket start
	Start time.Time `json:"bucket_start"`
	// End is the bucket end; exclusive except for the final bucket
	End time.Time `json:"bucket_end"`
	// Label is the display label for the bucket start ("14:00")
	Label string `json:"label"`
	// EventCount is the number of in-window events in this bucket
	EventCount int `json:"event_count"`
	// DominantCategory is the most frequent category among the bucket's
	// events, priority-ranked on ties; notable when the bucket is empty
	DominantCategory events.Category `json:"dominant_category"`
}

// Timeline holds the computed buckets plus the in-window events, ready to
// answer scrub queries. Build a new Timeline whenever the underlying event
// set changes; a Timeline has no identity across recomputation.
type Timeline struct {
	buckets     []Bucket
	inWindow    []*events.Event // sorted newest first
	windowStart time.Time
	windowEnd   time.Time
}

// Build partitions [windowStart, windowEnd] into bucketCount equal-width
// buckets and assigns every event with a valid in-window timestamp to
// exactly one of them. Events with zero timestamps are excluded: a bucket
// requires a real instant. Returns ErrInvalidWindow when windowStart is
// not before windowEnd or bucketCount < 1.
func Build(evts []*events.Event, windowStart, windowEnd time.Time, bucketCount int) (*Timeline, error) {
	if !windowStart.Before(windowEnd) {
		return nil, fmt.Errorf("%w: start %v is not before end %v", ErrInvalidWindow, windowStart, windowEnd)
	}
	if bucketCount < 1 {
		return nil, fmt.Errorf("%w: bucket count %d", ErrInvalidWindow, bucketCount)
	}

	tl := &Timeline{
		windowStart: windowStart,
		windowEnd:   windowEnd,
	}

	// Boundary interpolation keeps the union of buckets exactly equal to
	// the window even when the width does not divide evenly.
	total := windowEnd.Sub(windowStart)
	boundary := func(i int) time.Time {
		return windowStart.Add(total * time.Duration(i) / time.Duration(bucketCount))
	}

	tl.buckets = make([]Bucket, bucketCount)
	for i := 0; i < bucketCount; i++ {
		tl.buckets[i] = Bucket{
			Index:            i,
			Start:            boundary(i),
			End:              boundary(i + 1),
			Label:            boundary(i).Format("15:04"),
			DominantCategory: events.CategoryNotable,
		}
	}

	categoryCounts := make([]map[events.Category]int, bucketCount)
	for _, e := range evts {
		i, ok := tl.bucketIndex(e.CreatedAt)
		if !ok {
			continue
		}
		tl.inWindow = append(tl.inWindow, e)
		tl.buckets[i].EventCount++
		if categoryCounts[i] == nil {
			categoryCounts[i] = make(map[events.Category]int)
		}
		categoryCounts[i][events.NormalizeCategory(string(e.Category))]++
	}

	for i := range tl.buckets {
		if counts := categoryCounts[i]; counts != nil {
			tl.buckets[i].DominantCategory = dominantCategory(counts)
		}
	}

	// Newest first for scrub queries; SliceStable keeps arrival order
	// among equal timestamps deterministic.
	sort.SliceStable(tl.inWindow, func(a, b int) bool {
		return tl.inWindow[a].CreatedAt.After(tl.inWindow[b].CreatedAt)
	})

	return tl, nil
}

// bucketIndex locates the bucket containing t, applying the half-open
// rule: a boundary instant belongs to the bucket starting there, except
// the window end, which closes the final bucket.
func (tl *Timeline) bucketIndex(t time.Time) (int, bool) {
	if t.IsZero() || t.Before(tl.windowStart) || t.After(tl.windowEnd) {
		return 0, false
	}
	n := len(tl.buckets)
	if t.Equal(tl.windowEnd) {
		return n - 1, true
	}
	// Buckets are few (24 by default); a scan beats bookkeeping.
	for i := n - 1; i >= 0; i-- {
		if !t.Before(tl.buckets[i].Start) {
			return i, true
		}
	}
	return 0, true
}

// dominantCategory picks the highest-count category, breaking ties by the
// fixed priority order so the result never depends on map iteration.
func dominantCategory(counts map[events.Category]int) events.Category {
	best := events.CategoryNotable
	bestCount := -1
	for _, c := range events.Categories() {
		if n := counts[c]; n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

// Buckets returns the window's buckets ascending by start time.
func (tl *Timeline) Buckets() []Bucket {
	out := make([]Bucket, len(tl.buckets))
	copy(out, tl.buckets)
	return out
}

// EventsInBucket returns the events whose timestamps fall in the given
// bucket's interval, newest first.
func (tl *Timeline) EventsInBucket(index int) ([]*events.Event, error) {
	if index < 0 || index >= len(tl.buckets) {
		return nil, fmt.Errorf("bucket index %d out of range [0,%d)", index, len(tl.buckets))
	}
	var out []*events.Event
	for _, e := range tl.inWindow {
		if i, ok := tl.bucketIndex(e.CreatedAt); ok && i == index {
			out = append(out, e)
		}
	}
	return out, nil
}

// EventsUpTo returns the most recent limit events with timestamps at or
// before the given bucket's end, newest first: the "story so far" at that
// scrub position. Non-positive limits use DefaultStoryLimit. The
// underlying cumulative set only grows as the index advances, and never
// contains an event past the active bucket's end.
func (tl *Timeline) EventsUpTo(index, limit int) ([]*events.Event, error) {
	if index < 0 || index >= len(tl.buckets) {
		return nil, fmt.Errorf("bucket index %d out of range [0,%d)", index, len(tl.buckets))
	}
	if limit <= 0 {
		limit = DefaultStoryLimit
	}

	end := tl.buckets[index].End
	var out []*events.Event
	for _, e := range tl.inWindow {
		if e.CreatedAt.After(end) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// EventCount reports the number of events that landed in the window.
func (tl *Timeline) EventCount() int {
	return len(tl.inWindow)
}

// Window returns the replay window bounds.
func (tl *Timeline) Window() (start, end time.Time) {
	return tl.windowStart, tl.windowEnd
}
