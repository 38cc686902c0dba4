package timeline

import (
	"github.com/emergence-sim/emergence/internal/events"
)

// Visibility is session-scoped display state: the global background/system
// toggles plus optional per-day overrides. It is passed explicitly to each
// derivation pass rather than held as ambient state, and is never persisted.
type Visibility struct {
	// ShowBackground reveals work/idle events
	ShowBackground bool
	// ShowSystem reveals invalid_action/processing_error events
	ShowSystem bool
	// DayOverrides takes precedence over the global toggles for a
	// specific day only
	DayOverrides map[int]DayVisibility
}

// DayVisibility is a per-day override of the global toggles.
type DayVisibility struct {
	ShowBackground bool
	ShowSystem     bool
}

// ForDay resolves the effective toggles for a day, applying any override.
func (v Visibility) ForDay(day int) (showBackground, showSystem bool) {
	if override, ok := v.DayOverrides[day]; ok {
		return override.ShowBackground, override.ShowSystem
	}
	return v.ShowBackground, v.ShowSystem
}

// SetDayOverride records a per-day override, allocating the map on first use.
func (v *Visibility) SetDayOverride(day int, showBackground, showSystem bool) {
	if v.DayOverrides == nil {
		v.DayOverrides = make(map[int]DayVisibility)
	}
	v.DayOverrides[day] = DayVisibility{
		ShowBackground: showBackground,
		ShowSystem:     showSystem,
	}
}

// ClearDayOverride removes a per-day override, restoring the global toggles.
func (v *Visibility) ClearDayOverride(day int) {
	delete(v.DayOverrides, day)
}

// FilterGroups applies visibility filtering to day groups. Groups whose
// events are all hidden are dropped from the result; the input is never
// mutated.
func FilterGroups(groups []DayGroup, v Visibility) []DayGroup {
	out := make([]DayGroup, 0, len(groups))
	for _, g := range groups {
		showBackground, showSystem := v.ForDay(g.Day)
		var visible []*events.Event
		for _, e := range g.Events {
			if events.IsVisible(e.Type, showBackground, showSystem) {
				visible = append(visible, e)
			}
		}
		if len(visible) > 0 {
			out = append(out, DayGroup{Day: g.Day, Events: visible})
		}
	}
	return out
}
