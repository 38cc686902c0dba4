package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONTagsSnakeCase(t *testing.T) {
	event := &Event{
		ID:          "evt-123",
		Type:        EventTypeLawPassed,
		CreatedAt:   time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC),
		AgentID:     "agent-4",
		Description: "Rationing Act passed",
		Salience:    6,
		Category:    CategoryGovernance,
		SimDay:      3,
		Data: map[string]interface{}{
			"law_id": "law-9",
			"title":  "Rationing Act",
		},
	}

	jsonBytes, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to marshal Event: %v", err)
	}

	jsonStr := string(jsonBytes)

	expectedFields := []string{
		`"id"`,
		`"event_type"`,
		`"created_at"`,
		`"agent_id"`,
		`"description"`,
		`"salience"`,
		`"category"`,
		`"sim_day"`,
		`"data"`,
	}

	for _, field := range expectedFields {
		if !strings.Contains(jsonStr, field) {
			t.Errorf("JSON missing expected field: %s\nGot: %s", field, jsonStr)
		}
	}
}

func TestTradeDataHelpers(t *testing.T) {
	event := NewEvent(EventTypeTrade, "agent-1", "trade happened")

	original := TradeData{
		FromAgent: "agent-1",
		ToAgent:   "agent-2",
		Resource:  "water",
		Amount:    12,
		Price:     3.5,
	}
	if err := event.SetTradeData(original); err != nil {
		t.Fatalf("SetTradeData failed: %v", err)
	}

	got, err := event.GetTradeData()
	if err != nil {
		t.Fatalf("GetTradeData failed: %v", err)
	}
	if *got != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, original)
	}
}

func TestCrisisDataHelpers(t *testing.T) {
	event, err := NewCrisisEvent("blight hits the fields", 9, CrisisData{
		CrisisType:     "blight",
		Severity:       0.8,
		AffectedAgents: []string{"agent-1", "agent-2"},
	})
	if err != nil {
		t.Fatalf("NewCrisisEvent failed: %v", err)
	}

	if event.Category != CategoryCrisis {
		t.Errorf("Category = %q, want crisis", event.Category)
	}

	got, err := event.GetCrisisData()
	if err != nil {
		t.Fatalf("GetCrisisData failed: %v", err)
	}
	if got.CrisisType != "blight" || got.Severity != 0.8 {
		t.Errorf("crisis data = %+v", got)
	}
	if len(got.AffectedAgents) != 2 {
		t.Errorf("AffectedAgents = %v", got.AffectedAgents)
	}
}

func TestNewEventDefaults(t *testing.T) {
	event := NewEvent(EventTypeForumPost, "agent-9", "first post")

	if event.ID == "" {
		t.Error("NewEvent should generate an ID")
	}
	if event.CreatedAt.IsZero() {
		t.Error("NewEvent should stamp a timestamp")
	}
	if event.Category != CategoryNotable {
		t.Errorf("Category = %q, want notable", event.Category)
	}
	if event.Salience != 0 {
		t.Errorf("Salience = %v, want 0", event.Salience)
	}
}
