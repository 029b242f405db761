package workspace

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// TimelineEvent is a presentation-ready service event.
type TimelineEvent struct {
	ID         int64      `json:"id,omitempty"`
	OrderID    int64      `json:"orderId"`
	Type       string     `json:"type"`
	Label      string     `json:"label"`
	Status     string     `json:"status,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Author     string     `json:"author,omitempty"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
	Timestamp  string     `json:"timestamp,omitempty"`
	Relative   string     `json:"relative"`
	Severity   string     `json:"severity,omitempty"`
	IsIncident bool       `json:"isIncident"`
}

// eventLabels maps well-known event types to display labels. Unknown types
// fall back to a titleized form of the type token.
var eventLabels = map[string]string{
	"created":            "Service requested",
	"assigned":           "Provider assigned",
	"en_route":           "Provider en route",
	"arrived":            "Provider on site",
	"job_started":        "Work started",
	"job_completed":      "Work completed",
	"completed":          "Service completed",
	"cancelled":          "Service cancelled",
	"rescheduled":        "Visit rescheduled",
	"note":               "Note added",
	"incident_reported":  "Incident reported",
	"incident_resolved":  "Incident resolved",
	"parts_ordered":      "Parts ordered",
	"customer_contacted": "Customer contacted",
}

func eventLabel(eventType string) string {
	if label, ok := eventLabels[eventType]; ok {
		return label
	}
	return titleize(eventType)
}

// titleize converts a snake_case token into a spaced, word-capitalized label.
func titleize(token string) string {
	words := strings.FieldsFunc(token, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	if len(words) == 0 {
		return "Update"
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// relativeTime renders how long ago a moment was, rounding to the nearest
// unit at each bucket boundary.
func relativeTime(now time.Time, at *time.Time) string {
	if at == nil {
		return ""
	}
	diff := now.Sub(*at)
	if diff < time.Minute {
		return "Just now"
	}

	minutes := diff.Minutes()
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm ago", roundInt(minutes))
	case minutes < 24*60:
		return fmt.Sprintf("%dh ago", roundInt(minutes/60))
	case minutes < 7*24*60:
		return fmt.Sprintf("%dd ago", roundInt(minutes/(24*60)))
	case minutes < 5*7*24*60:
		return fmt.Sprintf("%dw ago", roundInt(minutes/(7*24*60)))
	case minutes < 12*30*24*60:
		return fmt.Sprintf("%dmo ago", roundInt(minutes/(30*24*60)))
	default:
		return fmt.Sprintf("%dy ago", roundInt(minutes/(365*24*60)))
	}
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func formatTimestamp(at *time.Time) string {
	if at == nil {
		return ""
	}
	return at.UTC().Format("02 Jan 2006, 15:04")
}

// eventSeverity reads the severity marker from event metadata, checking
// both keys the mobile clients have historically written.
func eventSeverity(metadata map[string]any) string {
	for _, key := range []string{"severity", "riskLevel"} {
		if s, ok := metadata[key].(string); ok {
			if trimmed := strings.ToLower(strings.TrimSpace(s)); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// isIncident reports whether an event represents an operational incident:
// an explicit metadata flag, an incident-typed event, or a high severity
// marker.
func isIncident(event Event) bool {
	if truthy(event.Metadata["incident"]) {
		return true
	}
	if strings.Contains(event.Type, "incident") {
		return true
	}
	return eventSeverity(event.Metadata) == "high"
}

func truthy(v any) bool {
	switch typed := v.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case float64:
		return typed != 0
	default:
		return false
	}
}

// buildTimelines groups events per order and sorts each group oldest first.
// Events without a timestamp sort as time zero. The sort is stable so equal
// timestamps keep their arrival order.
func buildTimelines(now time.Time, events []Event) map[int64][]TimelineEvent {
	timelines := make(map[int64][]TimelineEvent)
	for _, event := range events {
		entry := TimelineEvent{
			ID:         event.ID,
			OrderID:    event.OrderID,
			Type:       event.Type,
			Label:      eventLabel(event.Type),
			Status:     event.Status,
			Notes:      event.Notes,
			Author:     event.Author,
			OccurredAt: event.OccurredAt,
			Timestamp:  formatTimestamp(event.OccurredAt),
			Relative:   relativeTime(now, event.OccurredAt),
			Severity:   eventSeverity(event.Metadata),
			IsIncident: isIncident(event),
		}
		timelines[event.OrderID] = append(timelines[event.OrderID], entry)
	}

	for orderID := range timelines {
		entries := timelines[orderID]
		sort.SliceStable(entries, func(i, j int) bool {
			left, right := entries[i].OccurredAt, entries[j].OccurredAt
			if left == nil {
				return right != nil
			}
			if right == nil {
				return false
			}
			return left.Before(*right)
		})
		timelines[orderID] = entries
	}

	return timelines
}
