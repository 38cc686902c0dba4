package events

import (
	"testing"
)

func TestClassifyTotality(t *testing.T) {
	tests := []struct {
		name      string
		eventType EventType
		want      Class
	}{
		{"work is background", EventTypeWork, ClassBackground},
		{"idle is background", EventTypeIdle, ClassBackground},
		{"invalid_action is noisy", EventTypeInvalidAction, ClassNoisy},
		{"processing_error is noisy", EventTypeProcessingError, ClassNoisy},
		{"forum_post is salient", EventTypeForumPost, ClassSalient},
		{"law_passed is salient", EventTypeLawPassed, ClassSalient},
		{"betrayal is salient", EventTypeBetrayal, ClassSalient},
		{"crisis is salient", EventTypeCrisis, ClassSalient},
		{"empty string is unclassified", EventType(""), ClassUnclassified},
		{"unknown tag is unclassified", EventType("quantum_leap"), ClassUnclassified},
		{"near-miss tag is unclassified", EventType("forum_posts"), ClassUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.eventType)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestClassifyAllSalientTypes(t *testing.T) {
	for eventType := range salientTypes {
		if got := Classify(eventType); got != ClassSalient {
			t.Errorf("Classify(%q) = %q, want salient", eventType, got)
		}
	}
}

func TestIsVisibleToggles(t *testing.T) {
	tests := []struct {
		name           string
		eventType      EventType
		showBackground bool
		showSystem     bool
		want           bool
	}{
		{"background hidden by default", EventTypeWork, false, false, false},
		{"background shown when toggled", EventTypeWork, true, false, true},
		{"noisy hidden by default", EventTypeProcessingError, false, false, false},
		{"noisy shown when toggled", EventTypeProcessingError, false, true, true},
		{"background toggle does not reveal noisy", EventTypeInvalidAction, true, false, false},
		{"system toggle does not reveal background", EventTypeIdle, false, true, false},
		{"salient always visible", EventTypeCrisis, false, false, true},
		{"salient visible with all toggles on", EventTypeTrade, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsVisible(tt.eventType, tt.showBackground, tt.showSystem)
			if got != tt.want {
				t.Errorf("IsVisible(%q, %t, %t) = %t, want %t",
					tt.eventType, tt.showBackground, tt.showSystem, got, tt.want)
			}
		})
	}
}

// Unknown types must stay hidden no matter how the toggles are set.
func TestIsVisibleFailsClosed(t *testing.T) {
	unknown := []EventType{"", "mystery", "debug_dump", "forum"}
	for _, eventType := range unknown {
		for _, showBackground := range []bool{false, true} {
			for _, showSystem := range []bool{false, true} {
				if IsVisible(eventType, showBackground, showSystem) {
					t.Errorf("IsVisible(%q, %t, %t) = true, want false",
						eventType, showBackground, showSystem)
				}
			}
		}
	}
}

func TestDefaultCategory(t *testing.T) {
	tests := []struct {
		eventType EventType
		want      Category
	}{
		{EventTypeCrisis, CategoryCrisis},
		{EventTypeCrisisResolved, CategoryCrisis},
		{EventTypeBetrayal, CategoryConflict},
		{EventTypeSanction, CategoryConflict},
		{EventTypeAllianceFormed, CategoryAlliance},
		{EventTypeFactionFormed, CategoryAlliance},
		{EventTypeLawPassed, CategoryGovernance},
		{EventTypeVoteCast, CategoryGovernance},
		{EventTypeTrade, CategoryCooperation},
		{EventTypeForumPost, CategoryNotable},
		{EventTypeWork, CategoryNotable},
		{EventType("unknown"), CategoryNotable},
	}

	for _, tt := range tests {
		if got := DefaultCategory(tt.eventType); got != tt.want {
			t.Errorf("DefaultCategory(%q) = %q, want %q", tt.eventType, got, tt.want)
		}
	}
}

func TestCategoryRankOrdering(t *testing.T) {
	// crisis outranks everything; notable outranks only unknowns
	if CategoryRank(CategoryCrisis) >= CategoryRank(CategoryConflict) {
		t.Error("crisis should outrank conflict")
	}
	if CategoryRank(CategoryCooperation) >= CategoryRank(CategoryNotable) {
		t.Error("cooperation should outrank notable")
	}
	if CategoryRank(CategoryNotable) >= CategoryRank(Category("bogus")) {
		t.Error("notable should outrank unknown categories")
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("crisis"); got != CategoryCrisis {
		t.Errorf("NormalizeCategory(crisis) = %q", got)
	}
	if got := NormalizeCategory(""); got != CategoryNotable {
		t.Errorf("NormalizeCategory(empty) = %q, want notable", got)
	}
	if got := NormalizeCategory("dramatic"); got != CategoryNotable {
		t.Errorf("NormalizeCategory(unknown) = %q, want notable", got)
	}
}
