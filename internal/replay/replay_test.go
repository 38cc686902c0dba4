package replay

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergence-sim/emergence/internal/events"
)

var windowStart = time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
var windowEnd = windowStart.Add(24 * time.Hour)

func makeEvent(id string, eventType events.EventType, category events.Category, at time.Time) *events.Event {
	return &events.Event{
		ID:          id,
		Type:        eventType,
		CreatedAt:   at,
		Description: id,
		Category:    category,
	}
}

func TestBuildInvalidWindow(t *testing.T) {
	tests := []struct {
		name        string
		start, end  time.Time
		bucketCount int
	}{
		{"start equals end", windowStart, windowStart, 24},
		{"start after end", windowEnd, windowStart, 24},
		{"zero buckets", windowStart, windowEnd, 0},
		{"negative buckets", windowStart, windowEnd, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(nil, tt.start, tt.end, tt.bucketCount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWindow))
		})
	}
}

func TestBucketTiling(t *testing.T) {
	tl, err := Build(nil, windowStart, windowEnd, 24)
	require.NoError(t, err)

	buckets := tl.Buckets()
	require.Len(t, buckets, 24)

	assert.True(t, buckets[0].Start.Equal(windowStart))
	assert.True(t, buckets[23].End.Equal(windowEnd))
	for i := 0; i < 23; i++ {
		// Contiguous, non-overlapping: each end is the next start
		assert.True(t, buckets[i].End.Equal(buckets[i+1].Start),
			"bucket %d end != bucket %d start", i, i+1)
		assert.True(t, buckets[i].Start.Before(buckets[i].End))
	}
	assert.Equal(t, "00:00", buckets[0].Label)
	assert.Equal(t, "13:00", buckets[13].Label)
}

// Tiling stays exact even when the window does not divide evenly.
func TestBucketTilingUnevenWidth(t *testing.T) {
	end := windowStart.Add(10*time.Hour + 1*time.Nanosecond)
	tl, err := Build(nil, windowStart, end, 7)
	require.NoError(t, err)

	buckets := tl.Buckets()
	require.Len(t, buckets, 7)
	assert.True(t, buckets[0].Start.Equal(windowStart))
	assert.True(t, buckets[6].End.Equal(end))
	for i := 0; i < 6; i++ {
		assert.True(t, buckets[i].End.Equal(buckets[i+1].Start))
	}
}

func TestEveryInWindowEventCountedOnce(t *testing.T) {
	var evts []*events.Event
	for i := 0; i < 10; i++ {
		at := windowStart.Add(time.Duration(i) * 144 * time.Minute) // even spread
		evts = append(evts, makeEvent(fmt.Sprintf("e%d", i), events.EventTypeTrade, events.CategoryCooperation, at))
	}
	// Out-of-window and timestampless events are excluded
	evts = append(evts,
		makeEvent("early", events.EventTypeTrade, events.CategoryCooperation, windowStart.Add(-time.Minute)),
		makeEvent("late", events.EventTypeTrade, events.CategoryCooperation, windowEnd.Add(time.Minute)),
		makeEvent("no-ts", events.EventTypeTrade, events.CategoryCooperation, time.Time{}),
	)

	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)

	total := 0
	for _, b := range tl.Buckets() {
		total += b.EventCount
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 10, tl.EventCount())
}

func TestBoundaryEventBelongsToStartingBucket(t *testing.T) {
	// An event exactly on a bucket boundary belongs to the bucket
	// starting there, not the prior one
	boundary := windowStart.Add(3 * time.Hour)
	tl, err := Build([]*events.Event{
		makeEvent("edge", events.EventTypeCrisis, events.CategoryCrisis, boundary),
	}, windowStart, windowEnd, 24)
	require.NoError(t, err)

	buckets := tl.Buckets()
	assert.Equal(t, 0, buckets[2].EventCount)
	assert.Equal(t, 1, buckets[3].EventCount)
}

func TestWindowEndBelongsToFinalBucket(t *testing.T) {
	tl, err := Build([]*events.Event{
		makeEvent("last", events.EventTypeTrade, events.CategoryCooperation, windowEnd),
	}, windowStart, windowEnd, 24)
	require.NoError(t, err)

	assert.Equal(t, 1, tl.Buckets()[23].EventCount)
}

func TestDominantCategory(t *testing.T) {
	at := windowStart.Add(30 * time.Minute)
	evts := []*events.Event{
		makeEvent("t1", events.EventTypeTrade, events.CategoryCooperation, at),
		makeEvent("t2", events.EventTypeTrade, events.CategoryCooperation, at),
		makeEvent("g1", events.EventTypeVoteCast, events.CategoryGovernance, at),
	}
	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)
	assert.Equal(t, events.CategoryCooperation, tl.Buckets()[0].DominantCategory)
}

func TestDominantCategoryTieBreaksByPriority(t *testing.T) {
	at := windowStart.Add(30 * time.Minute)
	// One crisis vs one cooperation: tie on count, crisis outranks
	evts := []*events.Event{
		makeEvent("c", events.EventTypeCrisis, events.CategoryCrisis, at),
		makeEvent("t", events.EventTypeTrade, events.CategoryCooperation, at),
	}
	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)
	assert.Equal(t, events.CategoryCrisis, tl.Buckets()[0].DominantCategory)

	// Order of input must not matter
	tl, err = Build([]*events.Event{evts[1], evts[0]}, windowStart, windowEnd, 24)
	require.NoError(t, err)
	assert.Equal(t, events.CategoryCrisis, tl.Buckets()[0].DominantCategory)
}

func TestEmptyWindow(t *testing.T) {
	tl, err := Build(nil, windowStart, windowEnd, 24)
	require.NoError(t, err)

	for _, b := range tl.Buckets() {
		assert.Equal(t, 0, b.EventCount)
		assert.Equal(t, events.CategoryNotable, b.DominantCategory)
	}
}

func TestEventsInBucket(t *testing.T) {
	evts := []*events.Event{
		makeEvent("older", events.EventTypeTrade, events.CategoryCooperation, windowStart.Add(10*time.Minute)),
		makeEvent("newer", events.EventTypeCrisis, events.CategoryCrisis, windowStart.Add(50*time.Minute)),
		makeEvent("elsewhere", events.EventTypeTrade, events.CategoryCooperation, windowStart.Add(5*time.Hour)),
	}
	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)

	got, err := tl.EventsInBucket(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].ID)
	assert.Equal(t, "older", got[1].ID)

	_, err = tl.EventsInBucket(24)
	assert.Error(t, err)
	_, err = tl.EventsInBucket(-1)
	assert.Error(t, err)
}

func TestEventsUpTo(t *testing.T) {
	var evts []*events.Event
	for i := 0; i < 12; i++ {
		at := windowStart.Add(time.Duration(i)*2*time.Hour + time.Minute)
		evts = append(evts, makeEvent(fmt.Sprintf("e%d", i), events.EventTypeForumPost, events.CategoryNotable, at))
	}
	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)

	// Scrub early: only the first event has happened
	got, err := tl.EventsUpTo(1, 8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e0", got[0].ID)

	// Scrub to the end: newest first, truncated to limit
	got, err = tl.EventsUpTo(23, 8)
	require.NoError(t, err)
	require.Len(t, got, 8)
	assert.Equal(t, "e11", got[0].ID)

	// Default limit applies for non-positive limits
	got, err = tl.EventsUpTo(23, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultStoryLimit)
}

func TestEventsUpToCumulativeMonotonic(t *testing.T) {
	var evts []*events.Event
	for i := 0; i < 12; i++ {
		at := windowStart.Add(time.Duration(i)*2*time.Hour + time.Minute)
		evts = append(evts, makeEvent(fmt.Sprintf("e%d", i), events.EventTypeForumPost, events.CategoryNotable, at))
	}
	tl, err := Build(evts, windowStart, windowEnd, 24)
	require.NoError(t, err)

	prev := map[string]bool{}
	for i := 0; i < 24; i++ {
		got, err := tl.EventsUpTo(i, len(evts))
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, e := range got {
			seen[e.ID] = true
			// Never an event past the active bucket's end
			assert.False(t, e.CreatedAt.After(tl.Buckets()[i].End),
				"bucket %d leaked future event %s", i, e.ID)
		}
		// Everything visible at a smaller index stays visible
		for id := range prev {
			assert.True(t, seen[id], "bucket %d lost event %s", i, id)
		}
		prev = seen
	}
}
