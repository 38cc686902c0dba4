// Package timeline groups simulation events into display "days" relative
// to the earliest loaded event. One simulated day is an hour of wall time
// by default; the dashboard renders days newest-first with the current
// day marked NOW.
package timeline

import (
	"sort"
	"time"

	"github.com/emergence-sim/emergence/internal/events"
)

// DefaultDayLength is the wall-clock duration of one simulated day.
const DefaultDayLength = time.Hour

// DayGroup is one simulated day's worth of events, in caller order.
type DayGroup struct {
	// Day is the 1-based simulation day index
	Day int `json:"day"`
	// Events holds the day's events in the order they were supplied
	Events []*events.Event `json:"events"`
}

// AssignDay computes the 1-based day index of a timestamp relative to a
// base time. Zero timestamps and timestamps before base land in day 1;
// this never errors and never drops an event.
func AssignDay(t, base time.Time, dayLength time.Duration) int {
	if dayLength <= 0 {
		dayLength = DefaultDayLength
	}
	if t.IsZero() || base.IsZero() || t.Before(base) {
		return 1
	}
	return int(t.Sub(base)/dayLength) + 1
}

// baseTime returns the earliest valid timestamp in the set, or zero if no
// event has one.
func baseTime(evts []*events.Event) time.Time {
	var base time.Time
	for _, e := range evts {
		if e.CreatedAt.IsZero() {
			continue
		}
		if base.IsZero() || e.CreatedAt.Before(base) {
			base = e.CreatedAt
		}
	}
	return base
}

// GroupByDay buckets events into day groups sorted descending by day
// (most recent day first). Within a day the caller's order is preserved;
// the upstream source already emits newest-first. Events with no valid
// timestamp land in day 1.
func GroupByDay(evts []*events.Event, dayLength time.Duration) []DayGroup {
	if len(evts) == 0 {
		return nil
	}

	base := baseTime(evts)
	byDay := make(map[int][]*events.Event)
	for _, e := range evts {
		day := AssignDay(e.CreatedAt, base, dayLength)
		byDay[day] = append(byDay[day], e)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for day, dayEvents := range byDay {
		groups = append(groups, DayGroup{Day: day, Events: dayEvents})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Day > groups[j].Day
	})
	return groups
}

// CurrentDay returns the highest day index across the set, used to mark
// the NOW day. An empty set reports day 1.
func CurrentDay(evts []*events.Event, dayLength time.Duration) int {
	if len(evts) == 0 {
		return 1
	}
	base := baseTime(evts)
	current := 1
	for _, e := range evts {
		if day := AssignDay(e.CreatedAt, base, dayLength); day > current {
			current = day
		}
	}
	return current
}
