package events

import (
	"encoding/json"
	"fmt"
)

// TradeData contains structured data for trade events.
type TradeData struct {
	// FromAgent is the agent offering resources
	FromAgent string `json:"from_agent"`
	// ToAgent is the agent receiving resources
	ToAgent string `json:"to_agent"`
	// Resource is the resource type exchanged
	Resource string `json:"resource"`
	// Amount is the quantity exchanged
	Amount float64 `json:"amount"`
	// Price is the agreed price, if any
	Price float64 `json:"price,omitempty"`
}

// LawPassedData contains structured data for law_passed events.
type LawPassedData struct {
	// LawID is the identifier of the law
	LawID string `json:"law_id"`
	// Title is the law's short title
	Title string `json:"title"`
	// VotesFor is the number of votes in favor
	VotesFor int `json:"votes_for"`
	// VotesAgainst is the number of votes against
	VotesAgainst int `json:"votes_against"`
	// ProposedBy is the agent that proposed the law
	ProposedBy string `json:"proposed_by,omitempty"`
}

// CrisisData contains structured data for crisis events.
type CrisisData struct {
	// CrisisType is the kind of crisis (famine, blight, raid, ...)
	CrisisType string `json:"crisis_type"`
	// Severity is the engine's severity rating (0.0 to 1.0)
	Severity float64 `json:"severity"`
	// AffectedAgents lists the agents hit by the crisis
	AffectedAgents []string `json:"affected_agents,omitempty"`
}

// SetTradeData sets the Data field with TradeData in a type-safe way.
func (e *Event) SetTradeData(data TradeData) error {
	dataMap, err := structToMap(data)
	if err != nil {
		return fmt.Errorf("failed to convert TradeData: %w", err)
	}
	e.Data = dataMap
	return nil
}

// GetTradeData retrieves TradeData from the Data field.
func (e *Event) GetTradeData() (*TradeData, error) {
	var data TradeData
	if err := mapToStruct(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse TradeData: %w", err)
	}
	return &data, nil
}

// SetLawPassedData sets the Data field with LawPassedData in a type-safe way.
func (e *Event) SetLawPassedData(data LawPassedData) error {
	dataMap, err := structToMap(data)
	if err != nil {
		return fmt.Errorf("failed to convert LawPassedData: %w", err)
	}
	e.Data = dataMap
	return nil
}

// GetLawPassedData retrieves LawPassedData from the Data field.
func (e *Event) GetLawPassedData() (*LawPassedData, error) {
	var data LawPassedData
	if err := mapToStruct(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse LawPassedData: %w", err)
	}
	return &data, nil
}

// SetCrisisData sets the Data field with CrisisData in a type-safe way.
func (e *Event) SetCrisisData(data CrisisData) error {
	dataMap, err := structToMap(data)
	if err != nil {
		return fmt.Errorf("failed to convert CrisisData: %w", err)
	}
	e.Data = dataMap
	return nil
}

// GetCrisisData retrieves CrisisData from the Data field.
func (e *Event) GetCrisisData() (*CrisisData, error) {
	var data CrisisData
	if err := mapToStruct(e.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse CrisisData: %w", err)
	}
	return &data, nil
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(data interface{}) (map[string]interface{}, error) {
	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(bytes, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// mapToStruct converts a map[string]interface{} to a struct using JSON unmarshaling.
func mapToStruct(dataMap map[string]interface{}, target interface{}) error {
	bytes, err := json.Marshal(dataMap)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, target)
}
