package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// wireEvent mirrors the backend's JSON event shape. Optional fields are
// pointers or raw values so absence is distinguishable; all defaults are
// applied here, at the boundary, not scattered through consumers.
type wireEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"event_type"`
	CreatedAt   string          `json:"created_at"`
	AgentID     string          `json:"agent_id"`
	Description string          `json:"description"`
	Salience    *float64        `json:"salience"`
	Importance  *float64        `json:"importance"`
	Category    string          `json:"category"`
	SimDay      int             `json:"sim_day"`
	Data        json.RawMessage `json:"data"`
}

// timestampFormats are the layouts the backend has been observed to emit.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999", // FastAPI naive datetime, assume UTC
	"2006-01-02 15:04:05",
}

// parseTimestamp parses an upstream timestamp string. Returns the zero
// time when the value is missing or unparseable; callers treat zero as
// "land in day 1", never as an error.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// DecodeEvent decodes a single JSON event payload, applying the documented
// defaults: missing salience reads as 0 (importance is accepted as an
// alias), missing category falls back to the type's default category, and
// a missing ID gets a generated one so de-duplication still works.
// Only structurally invalid JSON is an error; missing optional fields
// never are.
func DecodeEvent(data []byte) (*Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return fromWire(&w), nil
}

// DecodeEvents decodes a JSON array of event payloads.
func DecodeEvents(data []byte) ([]*Event, error) {
	var ws []*wireEvent
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to decode event list: %w", err)
	}
	out := make([]*Event, 0, len(ws))
	for _, w := range ws {
		if w == nil {
			// a JSON null element carries nothing worth keeping
			continue
		}
		out = append(out, fromWire(w))
	}
	return out, nil
}

func fromWire(w *wireEvent) *Event {
	e := &Event{
		ID:          w.ID,
		Type:        EventType(w.Type),
		CreatedAt:   parseTimestamp(w.CreatedAt),
		AgentID:     w.AgentID,
		Description: w.Description,
		SimDay:      w.SimDay,
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	// salience preferred, importance accepted as a legacy alias
	switch {
	case w.Salience != nil:
		e.Salience = *w.Salience
	case w.Importance != nil:
		e.Salience = *w.Importance
	}

	if w.Category != "" {
		e.Category = NormalizeCategory(w.Category)
	} else {
		e.Category = DefaultCategory(e.Type)
	}

	if len(w.Data) > 0 {
		var m map[string]interface{}
		if err := json.Unmarshal(w.Data, &m); err == nil {
			e.Data = m
		}
		// Malformed data payloads are dropped, not fatal; the event
		// itself still renders from its top-level fields.
	}

	return e
}
