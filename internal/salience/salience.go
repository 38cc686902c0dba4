// Package salience ranks events by importance for the featured and
// plot-turn highlight views.
package salience

import (
	"sort"

	"github.com/emergence-sim/emergence/internal/events"
)

const (
	// DefaultMinSalience is the threshold for the plot-turn view
	DefaultMinSalience = 5.0
	// DefaultLimit caps the plot-turn list length
	DefaultLimit = 10
)

// SelectPlotTurns returns the events with salience >= minSalience, sorted
// by salience descending then recency descending, truncated to limit.
// Events with no salience score carry 0 and are excluded by any positive
// threshold. Pure and deterministic; the input slice is not reordered.
func SelectPlotTurns(evts []*events.Event, minSalience float64, limit int) []*events.Event {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var out []*events.Event
	for _, e := range evts {
		if e.Salience >= minSalience {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Salience != out[b].Salience {
			return out[a].Salience > out[b].Salience
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopCategory returns the priority-ranked dominant category among the
// given events, notable when the set is empty. Used to badge the featured
// view header.
func TopCategory(evts []*events.Event) events.Category {
	counts := make(map[events.Category]int)
	for _, e := range evts {
		counts[events.NormalizeCategory(string(e.Category))]++
	}

	best := events.CategoryNotable
	bestCount := 0
	for _, c := range events.Categories() {
		if n := counts[c]; n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}
