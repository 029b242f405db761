package workspace

import (
	"strings"
	"time"
)

// Offer is a follow-up service suggestion attached to an assignment by the
// dispatch tooling.
type Offer struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Assignment is the fully assembled operational view of one service order.
type Assignment struct {
	OrderID           int64           `json:"orderId"`
	Reference         string          `json:"reference"`
	Status            string          `json:"status"`
	StatusLabel       string          `json:"statusLabel"`
	Priority          string          `json:"priority"`
	ServiceType       string          `json:"serviceType"`
	Summary           string          `json:"summary,omitempty"`
	Customer          Contact         `json:"customer"`
	CustomerName      string          `json:"customerName"`
	Provider          *Provider       `json:"provider,omitempty"`
	Location          Location        `json:"location"`
	RequestedAt       *time.Time      `json:"requestedAt,omitempty"`
	ScheduledAt       *time.Time      `json:"scheduledAt,omitempty"`
	UpdatedAt         *time.Time      `json:"updatedAt,omitempty"`
	RequestedRelative string          `json:"requestedRelative,omitempty"`
	ScheduledLabel    string          `json:"scheduledLabel,omitempty"`
	EtaMinutes        *float64        `json:"etaMinutes,omitempty"`
	SLAMinutes        *float64        `json:"slaMinutes,omitempty"`
	ElapsedMinutes    *float64        `json:"elapsedMinutes,omitempty"`
	ResolutionMinutes *float64        `json:"resolutionMinutes,omitempty"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
	RiskLevel         string          `json:"riskLevel"`
	SLABreached       bool            `json:"slaBreached"`
	NextAction        string          `json:"nextAction"`
	Tags              []string        `json:"tags"`
	Route             *RoutePreview   `json:"route,omitempty"`
	Reminders         []Reminder      `json:"reminders"`
	Timeline          []TimelineEvent `json:"timeline"`
	Offers            []Offer         `json:"offers"`
	LastActivityAt    *time.Time      `json:"lastActivityAt,omitempty"`
	LastActivityLabel string          `json:"lastActivityLabel,omitempty"`

	// Partition and metrics inputs, not part of the rendered payload.
	CustomerUserID *int64 `json:"-"`
	ProviderUserID *int64 `json:"-"`
	OnTime         *bool  `json:"-"`
}

// buildAssignment assembles one order with its resolved provider, timeline,
// risk profile, route, and reminders.
func buildAssignment(now time.Time, order Order, provider *Provider, timeline []TimelineEvent) Assignment {
	profile := classifyRisk(now, order, timeline)

	assignment := Assignment{
		OrderID:           order.ID,
		Reference:         order.Reference,
		Status:            order.Status,
		StatusLabel:       statusLabel(order.Status),
		Priority:          order.Priority,
		ServiceType:       order.ServiceType,
		Summary:           order.Summary,
		Customer:          order.Customer,
		CustomerName:      order.Customer.DisplayName(),
		Provider:          provider,
		Location:          order.Location,
		RequestedAt:       order.RequestedAt,
		ScheduledAt:       order.ScheduledAt,
		UpdatedAt:         order.UpdatedAt,
		RequestedRelative: relativeTime(now, order.RequestedAt),
		ScheduledLabel:    formatTimestamp(order.ScheduledAt),
		EtaMinutes:        order.EtaMinutes,
		SLAMinutes:        order.SLAMinutes,
		ElapsedMinutes:    profile.ElapsedMinutes,
		ResolutionMinutes: profile.ResolutionMinutes,
		CompletedAt:       profile.CompletedAt,
		RiskLevel:         profile.RiskLevel,
		SLABreached:       profile.SLABreached,
		NextAction:        nextActionFor(order.Status, order.EtaMinutes),
		Tags:              normalizeTags(order.Metadata["tags"]),
		Route:             buildRoutePreview(now, order, provider),
		Reminders:         buildReminders(now, order),
		Timeline:          timeline,
		CustomerUserID:    order.CustomerUserID,
		ProviderUserID:    order.ProviderUserID,
		OnTime:            profile.OnTime,
	}
	if assignment.Timeline == nil {
		assignment.Timeline = []TimelineEvent{}
	}
	assignment.Offers = buildOffers(order.Metadata, assignment.Tags)

	assignment.LastActivityAt = lastActivity(assignment.Timeline, order.UpdatedAt)
	assignment.LastActivityLabel = relativeTime(now, assignment.LastActivityAt)

	return assignment
}

// normalizeTags coerces the metadata tag list and removes duplicates,
// comparing case-insensitively and keeping the first spelling seen.
func normalizeTags(v any) []string {
	raw := coerceStringList(v)
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// buildOffers uses offers stored by the dispatch tooling when present, and
// otherwise suggests follow-ups keyed by the customer's preference tags.
func buildOffers(metadata map[string]any, tags []string) []Offer {
	if list, ok := metadata["offers"].([]any); ok {
		out := make([]Offer, 0, len(list))
		for _, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			title, _ := obj["title"].(string)
			if strings.TrimSpace(title) == "" {
				continue
			}
			id, _ := obj["id"].(string)
			description, _ := obj["description"].(string)
			out = append(out, Offer{
				ID:          strings.TrimSpace(id),
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(description),
			})
		}
		if len(out) > 0 {
			return out
		}
	}
	return suggestOffers(tags)
}

func suggestOffers(tags []string) []Offer {
	out := make([]Offer, 0, 2)
	for _, tag := range tags {
		switch strings.ToLower(tag) {
		case "training":
			out = append(out, Offer{
				ID:          "offer-training",
				Title:       "Team training follow-up",
				Description: "Book a refresher session with the visiting technician",
			})
		case "hardware":
			out = append(out, Offer{
				ID:          "offer-hardware",
				Title:       "Hardware upgrade quote",
				Description: "Request pricing for the equipment flagged during the visit",
			})
		}
	}
	if len(out) == 0 {
		out = append(out, Offer{
			ID:          "offer-survey",
			Title:       "Service follow-up survey",
			Description: "Tell us how the visit went",
		})
	}
	return out
}

// lastActivity picks the newest timeline moment, falling back to the order
// update time. Timelines arrive oldest first.
func lastActivity(timeline []TimelineEvent, updatedAt *time.Time) *time.Time {
	for i := len(timeline) - 1; i >= 0; i-- {
		if timeline[i].OccurredAt != nil {
			return timeline[i].OccurredAt
		}
	}
	return updatedAt
}
