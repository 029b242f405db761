package workspace

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeTagsDedupCaseInsensitive(t *testing.T) {
	got := normalizeTags([]any{"Training", "training", "HARDWARE"})
	want := []string{"Training", "HARDWARE"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeTags = %v, want %v", got, want)
	}
}

func TestBuildRemindersSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	scheduled := now.Add(30 * time.Minute)

	order := Order{ID: 8, Status: "assigned", ScheduledAt: &scheduled, Metadata: map[string]any{}}
	reminders := buildReminders(now, order)
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(reminders))
	}

	// Pre-visit fires an hour ahead, so it is already in the past here.
	if reminders[0].Label != "Pre-visit checklist" || reminders[0].Status != "sent" {
		t.Fatalf("unexpected first reminder %+v", reminders[0])
	}
	if reminders[1].Label != "Technician arrival confirmation" || reminders[1].Status != "scheduled" {
		t.Fatalf("unexpected second reminder %+v", reminders[1])
	}
	if reminders[2].Label != "Post-visit satisfaction survey" || reminders[2].Status != "scheduled" {
		t.Fatalf("unexpected third reminder %+v", reminders[2])
	}
	if !reminders[2].SendAt.Equal(scheduled.Add(2 * time.Hour)) {
		t.Fatalf("survey should trail the visit by two hours, got %v", reminders[2].SendAt)
	}
}

func TestBuildRemindersUnscheduledOrderHasNone(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := buildReminders(now, Order{ID: 1, Status: "pending"}); len(got) != 0 {
		t.Fatalf("unscheduled order should have no reminders, got %d", len(got))
	}
}

func TestBuildRemindersStoredListWins(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	scheduled := now.Add(time.Hour)

	order := Order{
		ID:          4,
		Status:      "scheduled",
		ScheduledAt: &scheduled,
		Metadata: map[string]any{
			"reminders": []any{
				map[string]any{"id": "rem-1", "label": "Call ahead", "sendAt": "2026-03-10T11:30:00Z"},
				map[string]any{"sendAt": "2026-03-10T14:00:00Z"},
				map[string]any{"label": "broken entry", "sendAt": "not a time"},
			},
		},
	}

	reminders := buildReminders(now, order)
	if len(reminders) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(reminders))
	}
	if reminders[0].ID != "rem-1" || reminders[0].Label != "Call ahead" || reminders[0].Status != "sent" {
		t.Fatalf("unexpected first reminder %+v", reminders[0])
	}
	if reminders[1].ID != "order-4-reminder-1" || reminders[1].Label != "Visit reminder" || reminders[1].Status != "scheduled" {
		t.Fatalf("unexpected second reminder %+v", reminders[1])
	}
}

func TestBuildRemindersTerminalOrderKeepsSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	scheduled := now.Add(-3 * time.Hour)

	completed := Order{ID: 2, Status: "completed", ScheduledAt: &scheduled, Metadata: map[string]any{}}
	reminders := buildReminders(now, completed)
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(reminders))
	}
	for _, reminder := range reminders {
		if reminder.Status != "sent" {
			t.Fatalf("past reminder should read sent, got %+v", reminder)
		}
	}
}

func TestBuildOffersSuggestsFromTags(t *testing.T) {
	offers := buildOffers(map[string]any{}, []string{"Training", "hardware", "other"})
	if len(offers) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(offers))
	}
	if offers[0].ID != "offer-training" || offers[1].ID != "offer-hardware" {
		t.Fatalf("unexpected suggestions %v", offers)
	}

	offers = buildOffers(map[string]any{}, nil)
	if len(offers) != 1 || offers[0].ID != "offer-survey" {
		t.Fatalf("expected the generic survey fallback, got %v", offers)
	}

	// An empty stored list still falls through to suggestions.
	offers = buildOffers(map[string]any{"offers": []any{}}, nil)
	if len(offers) != 1 || offers[0].ID != "offer-survey" {
		t.Fatalf("empty stored list should fall back, got %v", offers)
	}
}

func TestBuildAssignmentAssembles(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	requested := now.Add(-30 * time.Minute)

	order := Order{
		ID:          11,
		Reference:   "SO-11",
		Status:      "en_route",
		Priority:    "high",
		ServiceType: "Network install",
		RequestedAt: &requested,
		EtaMinutes:  floatPtr(18),
		SLAMinutes:  floatPtr(240),
		Customer:    Contact{FirstName: "Priya", LastName: "Shah"},
		Metadata: map[string]any{
			"tags": []any{"Install", "install", "Priority"},
			"offers": []any{
				map[string]any{"id": "of-1", "title": "Annual maintenance plan"},
			},
		},
	}
	timeline := []TimelineEvent{
		{OrderID: 11, Type: "en_route", Label: "Provider en route", OccurredAt: minutesAgo(now, 5)},
	}

	assignment := buildAssignment(now, order, nil, timeline)
	if assignment.CustomerName != "Priya Shah" {
		t.Fatalf("unexpected customer name %q", assignment.CustomerName)
	}
	if assignment.StatusLabel != "Provider en route" {
		t.Fatalf("unexpected status label %q", assignment.StatusLabel)
	}
	if assignment.NextAction != "Provider arriving in ~18 min" {
		t.Fatalf("unexpected next action %q", assignment.NextAction)
	}
	if !reflect.DeepEqual(assignment.Tags, []string{"Install", "Priority"}) {
		t.Fatalf("unexpected tags %v", assignment.Tags)
	}
	if len(assignment.Offers) != 1 || assignment.Offers[0].Title != "Annual maintenance plan" {
		t.Fatalf("unexpected offers %v", assignment.Offers)
	}
	if assignment.LastActivityAt == nil || !assignment.LastActivityAt.Equal(*timeline[0].OccurredAt) {
		t.Fatalf("last activity should come from the timeline, got %v", assignment.LastActivityAt)
	}
	if assignment.RiskLevel != RiskOnTrack {
		t.Fatalf("unexpected risk level %q", assignment.RiskLevel)
	}
}
