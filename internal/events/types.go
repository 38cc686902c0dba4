package events

import (
	"time"
)

// EventType represents the type of event emitted by the simulation.
type EventType string

const (
	// Background activity - the simulation's idle hum

	// EventTypeWork indicates an agent performed its routine work action
	EventTypeWork EventType = "work"
	// EventTypeIdle indicates an agent spent a tick doing nothing
	EventTypeIdle EventType = "idle"

	// System noise - upstream processing artifacts, not simulation content

	// EventTypeInvalidAction indicates an agent emitted an action the engine rejected
	EventTypeInvalidAction EventType = "invalid_action"
	// EventTypeProcessingError indicates the backend failed to process an agent turn
	EventTypeProcessingError EventType = "processing_error"

	// Socially salient events - the content the dashboard exists to show

	// EventTypeForumPost indicates an agent posted to the public forum
	EventTypeForumPost EventType = "forum_post"
	// EventTypeForumReply indicates an agent replied to a forum thread
	EventTypeForumReply EventType = "forum_reply"
	// EventTypeVoteCast indicates an agent cast a vote on a proposal
	EventTypeVoteCast EventType = "vote_cast"
	// EventTypeLawProposed indicates an agent proposed a new law
	EventTypeLawProposed EventType = "law_proposed"
	// EventTypeLawPassed indicates a proposed law passed its vote
	EventTypeLawPassed EventType = "law_passed"
	// EventTypeLawRepealed indicates an existing law was repealed
	EventTypeLawRepealed EventType = "law_repealed"
	// EventTypeTrade indicates a completed resource trade between agents
	EventTypeTrade EventType = "trade"
	// EventTypeTradeOffer indicates an agent offered a trade
	EventTypeTradeOffer EventType = "trade_offer"
	// EventTypeDormancy indicates an agent went dormant after exhausting resources
	EventTypeDormancy EventType = "dormancy"
	// EventTypeAwakening indicates a dormant agent was revived
	EventTypeAwakening EventType = "awakening"
	// EventTypeFactionFormed indicates a new faction was founded
	EventTypeFactionFormed EventType = "faction_formed"
	// EventTypeFactionJoined indicates an agent joined a faction
	EventTypeFactionJoined EventType = "faction_joined"
	// EventTypeFactionLeft indicates an agent left a faction
	EventTypeFactionLeft EventType = "faction_left"
	// EventTypeCrisis indicates the engine triggered a colony crisis
	EventTypeCrisis EventType = "crisis"
	// EventTypeCrisisResolved indicates an active crisis ended
	EventTypeCrisisResolved EventType = "crisis_resolved"
	// EventTypeSanction indicates an agent was sanctioned under a standing law
	EventTypeSanction EventType = "sanction"
	// EventTypeElectionStarted indicates a leadership election opened
	EventTypeElectionStarted EventType = "election_started"
	// EventTypeElectionResult indicates a leadership election concluded
	EventTypeElectionResult EventType = "election_result"
	// EventTypeAllianceFormed indicates two or more agents formed an alliance
	EventTypeAllianceFormed EventType = "alliance_formed"
	// EventTypeBetrayal indicates an agent broke an alliance or reneged on a deal
	EventTypeBetrayal EventType = "betrayal"
)

// Class is the display classification of an event type.
type Class string

const (
	// ClassBackground indicates routine activity hidden behind a toggle
	ClassBackground Class = "background"
	// ClassNoisy indicates system noise hidden behind a toggle
	ClassNoisy Class = "noisy"
	// ClassSalient indicates socially meaningful events, always shown
	ClassSalient Class = "salient"
	// ClassUnclassified indicates an unknown event type, hidden by default
	ClassUnclassified Class = "unclassified"
)

// Category is the narrative category used for highlight and replay views.
type Category string

const (
	// CategoryCrisis marks existential threats to the colony
	CategoryCrisis Category = "crisis"
	// CategoryConflict marks betrayals, sanctions, and disputes
	CategoryConflict Category = "conflict"
	// CategoryAlliance marks pacts and faction formation
	CategoryAlliance Category = "alliance"
	// CategoryGovernance marks laws, votes, and elections
	CategoryGovernance Category = "governance"
	// CategoryCooperation marks trades and mutual aid
	CategoryCooperation Category = "cooperation"
	// CategoryNotable is the default for everything else worth surfacing
	CategoryNotable Category = "notable"
)

// categoryPriority orders categories for dominant-category tie-breaking,
// most dramatic first. Lower index wins a tie.
var categoryPriority = []Category{
	CategoryCrisis,
	CategoryConflict,
	CategoryAlliance,
	CategoryGovernance,
	CategoryCooperation,
	CategoryNotable,
}

// CategoryRank returns the tie-break rank of a category. Lower is stronger.
// Unknown categories rank below all known ones.
func CategoryRank(c Category) int {
	for i, p := range categoryPriority {
		if p == c {
			return i
		}
	}
	return len(categoryPriority)
}

// Categories returns the known categories in priority order.
func Categories() []Category {
	out := make([]Category, len(categoryPriority))
	copy(out, categoryPriority)
	return out
}

// NormalizeCategory maps an optional upstream category label to a known
// Category, defaulting to notable for empty or unknown labels.
func NormalizeCategory(label string) Category {
	c := Category(label)
	for _, p := range categoryPriority {
		if p == c {
			return c
		}
	}
	return CategoryNotable
}

// Event represents a discrete simulation occurrence delivered by the
// Emergence backend. Events are immutable once received; grouping and
// filtering derive new views without mutating the event itself.
type Event struct {
	// ID is the unique identifier for this event, stable across re-fetch
	ID string `json:"id"`
	// Type is the event type tag (open vocabulary)
	Type EventType `json:"event_type"`
	// CreatedAt is when the event occurred. Zero means the upstream
	// timestamp was missing or unparseable; day grouping falls back to day 1.
	CreatedAt time.Time `json:"created_at"`
	// AgentID is the simulation agent that produced this event
	AgentID string `json:"agent_id,omitempty"`
	// Description is the human-readable event text
	Description string `json:"description"`
	// Salience is the importance score assigned by the backend (0 = none)
	Salience float64 `json:"salience,omitempty"`
	// Category is the normalized narrative category (defaults to notable)
	Category Category `json:"category"`
	// SimDay is the server-assigned simulation day hint, 0 when absent
	SimDay int `json:"sim_day,omitempty"`
	// Data contains structured, type-specific data (must be JSON-serializable)
	Data map[string]interface{} `json:"data,omitempty"`
}

// EventFilter defines criteria for filtering stored events.
type EventFilter struct {
	// Type filters events by event type
	Type EventType
	// Category filters events by narrative category
	Category Category
	// AgentID filters events by emitting agent
	AgentID string
	// MinSalience filters events with salience >= this value
	MinSalience float64
	// AfterTime filters events that occurred after this time
	AfterTime time.Time
	// BeforeTime filters events that occurred before this time
	BeforeTime time.Time
	// Limit limits the number of events returned
	Limit int
}
