package workspace

import (
	"testing"
	"time"
)

func minutesAgo(now time.Time, minutes int) *time.Time {
	at := now.Add(-time.Duration(minutes) * time.Minute)
	return &at
}

func floatPtr(f float64) *float64 { return &f }

func TestClassifyRiskSLABoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		elapsedMin  int
		wantLevel   string
		wantBreach  bool
	}{
		{name: "well inside window", elapsedMin: 44, wantLevel: RiskOnTrack, wantBreach: false},
		{name: "warning threshold is inclusive", elapsedMin: 45, wantLevel: RiskWarning, wantBreach: false},
		{name: "inside warning band", elapsedMin: 46, wantLevel: RiskWarning, wantBreach: false},
		{name: "critical at the full window", elapsedMin: 60, wantLevel: RiskCritical, wantBreach: false},
		{name: "breach requires exceeding the window", elapsedMin: 61, wantLevel: RiskCritical, wantBreach: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := Order{
				ID:          1,
				Status:      "in_progress",
				RequestedAt: minutesAgo(now, tc.elapsedMin),
				SLAMinutes:  floatPtr(60),
				Metadata:    map[string]any{},
			}
			profile := classifyRisk(now, order, nil)
			if profile.RiskLevel != tc.wantLevel {
				t.Fatalf("risk level = %q, want %q", profile.RiskLevel, tc.wantLevel)
			}
			if profile.SLABreached != tc.wantBreach {
				t.Fatalf("slaBreached = %v, want %v", profile.SLABreached, tc.wantBreach)
			}
		})
	}
}

func TestClassifyRiskTerminalOverride(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-10 * time.Minute)

	order := Order{
		ID:          1,
		Status:      "completed",
		RequestedAt: minutesAgo(now, 500),
		UpdatedAt:   &updated,
		SLAMinutes:  floatPtr(60),
		Metadata:    map[string]any{},
	}

	profile := classifyRisk(now, order, nil)
	if profile.RiskLevel != RiskClosed {
		t.Fatalf("completed order should settle to closed, got %q", profile.RiskLevel)
	}
	if profile.SLABreached {
		t.Fatal("terminal orders never report an open breach")
	}
	if profile.CompletedAt == nil || !profile.CompletedAt.Equal(updated) {
		t.Fatalf("completion should fall back to the last update, got %v", profile.CompletedAt)
	}

	order.Status = "cancelled"
	order.UpdatedAt = nil
	profile = classifyRisk(now, order, nil)
	if profile.RiskLevel != RiskCancelled {
		t.Fatalf("cancelled order should report cancelled, got %q", profile.RiskLevel)
	}
}

func TestClassifyRiskIncidentWinsOverSchedule(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := Order{
		ID:          1,
		Status:      "in_progress",
		RequestedAt: minutesAgo(now, 10),
		SLAMinutes:  floatPtr(240),
		Metadata:    map[string]any{},
	}
	timeline := []TimelineEvent{
		{Type: "incident_reported", Severity: "high", IsIncident: true, OccurredAt: minutesAgo(now, 5)},
	}

	profile := classifyRisk(now, order, timeline)
	if profile.RiskLevel != RiskCritical {
		t.Fatalf("high severity incident must force critical, got %q", profile.RiskLevel)
	}
}

func TestClassifyRiskCompletionFromTimeline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	requested := now.Add(-90 * time.Minute)
	finished := now.Add(-40 * time.Minute)

	order := Order{
		ID:          1,
		Status:      "completed",
		RequestedAt: &requested,
		UpdatedAt:   minutesAgo(now, 1),
		SLAMinutes:  floatPtr(60),
		Metadata:    map[string]any{},
	}
	timeline := []TimelineEvent{
		{Type: "job_completed", OccurredAt: &finished},
	}

	profile := classifyRisk(now, order, timeline)
	if profile.ResolutionMinutes == nil || *profile.ResolutionMinutes != 50 {
		t.Fatalf("expected 50 minute resolution, got %v", profile.ResolutionMinutes)
	}
	if profile.OnTime == nil || !*profile.OnTime {
		t.Fatalf("50 minutes inside a 60 minute window is on time, got %v", profile.OnTime)
	}
}

func TestClassifyRiskMetadataFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := Order{
		ID:       1,
		Status:   "assigned",
		Metadata: map[string]any{"riskLevel": " At_Risk "},
	}

	profile := classifyRisk(now, order, nil)
	if profile.RiskLevel != "at_risk" {
		t.Fatalf("expected stored risk level, got %q", profile.RiskLevel)
	}
}

func TestNextActionEnRouteUsesEta(t *testing.T) {
	if got := nextActionFor("en_route", floatPtr(12.4)); got != "Provider arriving in ~12 min" {
		t.Fatalf("unexpected next action %q", got)
	}
	if got := nextActionFor("en_route", nil); got != "Track the provider en route" {
		t.Fatalf("unexpected next action %q", got)
	}
	if got := nextActionFor("something_new", nil); got != "Monitor service progression" {
		t.Fatalf("unexpected default action %q", got)
	}
}
