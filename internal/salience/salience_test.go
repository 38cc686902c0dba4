package salience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergence-sim/emergence/internal/events"
)

var t0 = time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC)

func makeEvent(id string, salience float64, at time.Time) *events.Event {
	return &events.Event{
		ID:        id,
		Type:      events.EventTypeForumPost,
		CreatedAt: at,
		Salience:  salience,
		Category:  events.CategoryNotable,
	}
}

func TestSelectPlotTurnsThreshold(t *testing.T) {
	evts := []*events.Event{
		makeEvent("low", 1, t0),
		makeEvent("mid", 5, t0.Add(time.Minute)),
		makeEvent("high", 9, t0.Add(2*time.Minute)),
		makeEvent("unscored", 0, t0.Add(3*time.Minute)),
	}

	got := SelectPlotTurns(evts, 5, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)

	// Threshold is inclusive
	for _, e := range got {
		assert.GreaterOrEqual(t, e.Salience, 5.0)
	}
}

func TestSelectPlotTurnsMissingSalienceExcluded(t *testing.T) {
	// Absent salience decodes as 0, so any positive threshold excludes it
	evts := []*events.Event{makeEvent("unscored", 0, t0)}
	assert.Empty(t, SelectPlotTurns(evts, 1, 10))

	// A zero threshold admits it
	assert.Len(t, SelectPlotTurns(evts, 0, 10), 1)
}

func TestSelectPlotTurnsTieBrokenByRecency(t *testing.T) {
	evts := []*events.Event{
		makeEvent("older", 7, t0),
		makeEvent("newer", 7, t0.Add(time.Hour)),
	}

	got := SelectPlotTurns(evts, 5, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].ID)
	assert.Equal(t, "older", got[1].ID)
}

func TestSelectPlotTurnsLimit(t *testing.T) {
	var evts []*events.Event
	for i := 0; i < 20; i++ {
		evts = append(evts, makeEvent(string(rune('a'+i)), float64(i), t0))
	}

	got := SelectPlotTurns(evts, 0, 3)
	require.Len(t, got, 3)
	assert.Equal(t, 19.0, got[0].Salience)

	// Non-positive limit falls back to the default
	got = SelectPlotTurns(evts, 0, 0)
	assert.Len(t, got, DefaultLimit)
}

func TestSelectPlotTurnsDoesNotMutateInput(t *testing.T) {
	evts := []*events.Event{
		makeEvent("a", 1, t0),
		makeEvent("b", 9, t0),
		makeEvent("c", 5, t0),
	}

	SelectPlotTurns(evts, 0, 10)
	assert.Equal(t, "a", evts[0].ID)
	assert.Equal(t, "b", evts[1].ID)
	assert.Equal(t, "c", evts[2].ID)
}

func TestTopCategory(t *testing.T) {
	assert.Equal(t, events.CategoryNotable, TopCategory(nil))

	evts := []*events.Event{
		{ID: "1", Category: events.CategoryGovernance},
		{ID: "2", Category: events.CategoryGovernance},
		{ID: "3", Category: events.CategoryCrisis},
	}
	assert.Equal(t, events.CategoryGovernance, TopCategory(evts))

	// Tie resolves by priority: crisis beats governance
	evts = append(evts, &events.Event{ID: "4", Category: events.CategoryCrisis})
	assert.Equal(t, events.CategoryCrisis, TopCategory(evts))
}
