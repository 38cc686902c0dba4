package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/emergence-sim/emergence/internal/events"
	"github.com/emergence-sim/emergence/internal/feed"
)

// displayEvent formats and prints a single event with color.
func displayEvent(event *events.Event) {
	emoji := getEventEmoji(event)
	categoryColor := getCategoryColor(event.Category)

	timestamp := "--:--:--"
	if !event.CreatedAt.IsZero() {
		timestamp = event.CreatedAt.Format("15:04:05")
	}

	agentColor := color.New(color.FgGreen)
	agent := agentColor.Sprint(event.AgentID)
	if event.AgentID == "" {
		agent = agentColor.Sprint("engine")
	}

	typeColor := color.New(color.FgMagenta)
	eventType := typeColor.Sprint(event.Type)

	fmt.Printf("%s [%s] %s %s: %s\n",
		emoji,
		timestamp,
		agent,
		eventType,
		categoryColor.Sprint(truncateString(event.Description, 80)),
	)

	if event.Salience > 0 {
		gray := color.New(color.FgHiBlack)
		fmt.Printf("    %s\n", gray.Sprintf("salience: %.1f | category: %s", event.Salience, event.Category))
	}
}

// displayHiddenCounts prints the "N hidden" affordance line the dashboard
// shows under the feed.
func displayHiddenCounts(counts feed.HiddenCounts) {
	if counts.Background == 0 && counts.Noisy == 0 {
		return
	}
	gray := color.New(color.FgHiBlack)
	var parts []string
	if counts.Background > 0 {
		parts = append(parts, fmt.Sprintf("%d background", counts.Background))
	}
	if counts.Noisy > 0 {
		parts = append(parts, fmt.Sprintf("%d system", counts.Noisy))
	}
	fmt.Printf("\n%s\n", gray.Sprintf("(%s hidden; use --background / --system to reveal)", strings.Join(parts, ", ")))
}

// getEventEmoji returns the appropriate emoji for each event type.
func getEventEmoji(event *events.Event) string {
	switch event.Type {
	case events.EventTypeForumPost, events.EventTypeForumReply:
		return "💬"
	case events.EventTypeVoteCast:
		return "🗳️"
	case events.EventTypeLawProposed, events.EventTypeLawPassed, events.EventTypeLawRepealed:
		return "⚖️"
	case events.EventTypeTrade, events.EventTypeTradeOffer:
		return "🤝"
	case events.EventTypeDormancy:
		return "💤"
	case events.EventTypeAwakening:
		return "🌅"
	case events.EventTypeFactionFormed, events.EventTypeFactionJoined, events.EventTypeFactionLeft:
		return "🚩"
	case events.EventTypeCrisis:
		return "🔥"
	case events.EventTypeCrisisResolved:
		return "🌈"
	case events.EventTypeSanction:
		return "🔨"
	case events.EventTypeElectionStarted, events.EventTypeElectionResult:
		return "🏛️"
	case events.EventTypeAllianceFormed:
		return "🔗"
	case events.EventTypeBetrayal:
		return "🗡️"
	case events.EventTypeWork, events.EventTypeIdle:
		return "⚙️"
	case events.EventTypeInvalidAction, events.EventTypeProcessingError:
		return "⚠️"
	default:
		return "•"
	}
}

// getCategoryColor returns the display color for a narrative category.
func getCategoryColor(category events.Category) *color.Color {
	switch category {
	case events.CategoryCrisis:
		return color.New(color.FgRed, color.Bold)
	case events.CategoryConflict:
		return color.New(color.FgRed)
	case events.CategoryAlliance:
		return color.New(color.FgBlue)
	case events.CategoryGovernance:
		return color.New(color.FgYellow)
	case events.CategoryCooperation:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

// categoryGlyph is the single-character scrubber cell for a category.
func categoryGlyph(category events.Category) string {
	switch category {
	case events.CategoryCrisis:
		return "█"
	case events.CategoryConflict:
		return "▓"
	case events.CategoryAlliance, events.CategoryGovernance:
		return "▒"
	case events.CategoryCooperation:
		return "░"
	default:
		return "·"
	}
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
