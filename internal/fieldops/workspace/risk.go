package workspace

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// slaWarningRatio is the share of the SLA window that may elapse before an
// open order is flagged as at risk.
const slaWarningRatio = 0.75

// Risk level vocabulary, ordered from healthy to urgent.
const (
	RiskOnTrack   = "on_track"
	RiskWarning   = "warning"
	RiskCritical  = "critical"
	RiskClosed    = "closed"
	RiskCancelled = "cancelled"
)

// riskProfile is the per-order SLA assessment feeding assignments, summary
// cards, and provider metrics.
type riskProfile struct {
	ElapsedMinutes    *float64
	ResolutionMinutes *float64
	CompletedAt       *time.Time
	RiskLevel         string
	SLABreached       bool
	OnTime            *bool
}

func isTerminalStatus(status string) bool {
	switch status {
	case "completed", "closed", "cancelled":
		return true
	}
	return false
}

// classifyRisk assesses one order against its SLA window.
//
// Precedence: a high severity incident always marks the order critical;
// terminal statuses settle to closed or cancelled; otherwise the elapsed
// share of the SLA window decides, falling back to a risk level stored in
// metadata and finally to on track.
func classifyRisk(now time.Time, order Order, timeline []TimelineEvent) riskProfile {
	profile := riskProfile{RiskLevel: RiskOnTrack}

	profile.CompletedAt = completionTime(order, timeline)

	if order.RequestedAt != nil {
		elapsed := now.Sub(*order.RequestedAt).Minutes()
		if elapsed < 0 {
			elapsed = 0
		}
		profile.ElapsedMinutes = &elapsed

		if profile.CompletedAt != nil {
			resolution := profile.CompletedAt.Sub(*order.RequestedAt).Minutes()
			if resolution < 0 {
				resolution = 0
			}
			profile.ResolutionMinutes = &resolution
		}
	}

	terminal := isTerminalStatus(order.Status)

	if order.SLAMinutes != nil && *order.SLAMinutes > 0 {
		if !terminal && profile.ElapsedMinutes != nil {
			profile.SLABreached = *profile.ElapsedMinutes > *order.SLAMinutes
		}
		if profile.ResolutionMinutes != nil {
			onTime := *profile.ResolutionMinutes <= *order.SLAMinutes
			profile.OnTime = &onTime
		}
	}

	if hasHighSeverityIncident(timeline) {
		profile.RiskLevel = RiskCritical
		return profile
	}

	switch order.Status {
	case "completed", "closed":
		profile.RiskLevel = RiskClosed
		return profile
	case "cancelled":
		profile.RiskLevel = RiskCancelled
		return profile
	}

	if order.SLAMinutes != nil && *order.SLAMinutes > 0 && profile.ElapsedMinutes != nil {
		switch {
		case *profile.ElapsedMinutes >= *order.SLAMinutes:
			profile.RiskLevel = RiskCritical
			return profile
		case *profile.ElapsedMinutes >= slaWarningRatio**order.SLAMinutes:
			profile.RiskLevel = RiskWarning
			return profile
		}
	}

	if stored, ok := order.Metadata["riskLevel"].(string); ok {
		if level := strings.ToLower(strings.TrimSpace(stored)); level != "" {
			profile.RiskLevel = level
		}
	}

	return profile
}

// completionTime finds when an order was actually finished: the earliest
// completion event, or the last update for orders closed without one.
func completionTime(order Order, timeline []TimelineEvent) *time.Time {
	var earliest *time.Time
	for _, entry := range timeline {
		if entry.Status != "completed" && entry.Type != "job_completed" && entry.Type != "completed" {
			continue
		}
		if entry.OccurredAt == nil {
			continue
		}
		if earliest == nil || entry.OccurredAt.Before(*earliest) {
			earliest = entry.OccurredAt
		}
	}
	if earliest != nil {
		return earliest
	}
	if order.Status == "completed" || order.Status == "closed" {
		return order.UpdatedAt
	}
	return nil
}

func hasHighSeverityIncident(timeline []TimelineEvent) bool {
	for _, entry := range timeline {
		if entry.IsIncident && entry.Severity == "high" {
			return true
		}
	}
	return false
}

var statusLabels = map[string]string{
	"pending":            "Awaiting assignment",
	"pending_assignment": "Awaiting assignment",
	"assigned":           "Provider assigned",
	"scheduled":          "Visit scheduled",
	"en_route":           "Provider en route",
	"arrived":            "Provider on site",
	"on_site":            "Provider on site",
	"in_progress":        "Work in progress",
	"on_hold":            "On hold",
	"completed":          "Completed",
	"closed":             "Closed",
	"cancelled":          "Cancelled",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return titleize(status)
}

// nextActionFor suggests the operator's next step for an order status.
func nextActionFor(status string, etaMinutes *float64) string {
	switch status {
	case "pending", "pending_assignment":
		return "Assign a provider"
	case "assigned", "scheduled":
		return "Confirm the visit window with the customer"
	case "en_route":
		if etaMinutes != nil && *etaMinutes > 0 {
			return fmt.Sprintf("Provider arriving in ~%d min", int(math.Round(*etaMinutes)))
		}
		return "Track the provider en route"
	case "arrived", "on_site":
		return "Validate completion checklist"
	case "in_progress":
		return "Monitor work in progress"
	case "on_hold":
		return "Review the hold reason"
	case "completed", "closed":
		return "Request customer feedback"
	case "cancelled":
		return "Review the cancellation reason"
	default:
		return "Monitor service progression"
	}
}
