package events

// Classification sets. Defined once at init and never mutated; these are
// the single source of truth for feed and timeline filtering.

// backgroundTypes are routine activity events hidden behind the
// "show background" toggle.
var backgroundTypes = map[EventType]bool{
	EventTypeWork: true,
	EventTypeIdle: true,
}

// noisyTypes are upstream processing artifacts hidden behind the
// "show system" toggle.
var noisyTypes = map[EventType]bool{
	EventTypeInvalidAction:   true,
	EventTypeProcessingError: true,
}

// salientTypes is the allow-list of socially meaningful event types.
// Anything outside all three sets is hidden by default.
var salientTypes = map[EventType]bool{
	EventTypeForumPost:       true,
	EventTypeForumReply:      true,
	EventTypeVoteCast:        true,
	EventTypeLawProposed:     true,
	EventTypeLawPassed:       true,
	EventTypeLawRepealed:     true,
	EventTypeTrade:           true,
	EventTypeTradeOffer:      true,
	EventTypeDormancy:        true,
	EventTypeAwakening:       true,
	EventTypeFactionFormed:   true,
	EventTypeFactionJoined:   true,
	EventTypeFactionLeft:     true,
	EventTypeCrisis:          true,
	EventTypeCrisisResolved:  true,
	EventTypeSanction:        true,
	EventTypeElectionStarted: true,
	EventTypeElectionResult:  true,
	EventTypeAllianceFormed:  true,
	EventTypeBetrayal:        true,
}

// Classify categorizes an event type into exactly one display class.
// It is total: empty and unknown types classify as unclassified, never error.
func Classify(t EventType) Class {
	switch {
	case backgroundTypes[t]:
		return ClassBackground
	case noisyTypes[t]:
		return ClassNoisy
	case salientTypes[t]:
		return ClassSalient
	default:
		return ClassUnclassified
	}
}

// IsVisible reports whether an event of the given type should be shown
// under the current visibility toggles. Salient events are always visible;
// unclassified types fail closed and are never visible.
func IsVisible(t EventType, showBackground, showSystem bool) bool {
	switch Classify(t) {
	case ClassBackground:
		return showBackground
	case ClassNoisy:
		return showSystem
	case ClassSalient:
		return true
	default:
		return false
	}
}

// IsSalient reports whether the event type is on the salient allow-list.
func IsSalient(t EventType) bool {
	return salientTypes[t]
}

// DefaultCategory maps an event type to its narrative category. Used at the
// ingestion boundary when the upstream payload carries no category label.
func DefaultCategory(t EventType) Category {
	switch t {
	case EventTypeCrisis, EventTypeCrisisResolved:
		return CategoryCrisis
	case EventTypeBetrayal, EventTypeSanction, EventTypeFactionLeft:
		return CategoryConflict
	case EventTypeAllianceFormed, EventTypeFactionFormed, EventTypeFactionJoined:
		return CategoryAlliance
	case EventTypeLawProposed, EventTypeLawPassed, EventTypeLawRepealed,
		EventTypeVoteCast, EventTypeElectionStarted, EventTypeElectionResult:
		return CategoryGovernance
	case EventTypeTrade, EventTypeTradeOffer:
		return CategoryCooperation
	default:
		return CategoryNotable
	}
}
