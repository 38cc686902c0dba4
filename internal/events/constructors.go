package events

import (
	"time"

	"github.com/google/uuid"
)

// NewEvent creates an event of the given type with a generated ID and the
// type's default category. Used for locally synthesized events (tests,
// fixtures, sim replays); events from the backend come through DecodeEvent.
func NewEvent(eventType EventType, agentID, description string) *Event {
	return &Event{
		ID:          uuid.New().String(),
		Type:        eventType,
		CreatedAt:   time.Now().UTC(),
		AgentID:     agentID,
		Description: description,
		Category:    DefaultCategory(eventType),
	}
}

// NewTradeEvent creates a trade event with type-safe data.
func NewTradeEvent(agentID, description string, salience float64, data TradeData) (*Event, error) {
	event := NewEvent(EventTypeTrade, agentID, description)
	event.Salience = salience
	if err := event.SetTradeData(data); err != nil {
		return nil, err
	}
	return event, nil
}

// NewLawPassedEvent creates a law_passed event with type-safe data.
func NewLawPassedEvent(agentID, description string, salience float64, data LawPassedData) (*Event, error) {
	event := NewEvent(EventTypeLawPassed, agentID, description)
	event.Salience = salience
	if err := event.SetLawPassedData(data); err != nil {
		return nil, err
	}
	return event, nil
}

// NewCrisisEvent creates a crisis event with type-safe data.
func NewCrisisEvent(description string, salience float64, data CrisisData) (*Event, error) {
	event := NewEvent(EventTypeCrisis, "", description)
	event.Salience = salience
	if err := event.SetCrisisData(data); err != nil {
		return nil, err
	}
	return event, nil
}
