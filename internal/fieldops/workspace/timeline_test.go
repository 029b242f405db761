package workspace

import (
	"testing"
	"time"
)

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "under a minute", ago: 20 * time.Second, want: "Just now"},
		{name: "minutes", ago: 12 * time.Minute, want: "12m ago"},
		{name: "hours", ago: 3 * time.Hour, want: "3h ago"},
		{name: "days", ago: 49 * time.Hour, want: "2d ago"},
		{name: "weeks", ago: 16 * 24 * time.Hour, want: "2w ago"},
		{name: "months", ago: 70 * 24 * time.Hour, want: "2mo ago"},
		{name: "years", ago: 800 * 24 * time.Hour, want: "2y ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at := now.Add(-tc.ago)
			if got := relativeTime(now, &at); got != tc.want {
				t.Fatalf("relativeTime = %q, want %q", got, tc.want)
			}
		})
	}

	if got := relativeTime(now, nil); got != "" {
		t.Fatalf("nil timestamp should render empty, got %q", got)
	}
}

func TestEventLabelFallbackTitleizes(t *testing.T) {
	if got := eventLabel("en_route"); got != "Provider en route" {
		t.Fatalf("known type mapped to %q", got)
	}
	if got := eventLabel("battery_swap_requested"); got != "Battery Swap Requested" {
		t.Fatalf("unknown type mapped to %q", got)
	}
}

func TestIsIncidentDetection(t *testing.T) {
	cases := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			name:  "explicit metadata flag",
			event: Event{Type: "note", Metadata: map[string]any{"incident": true}},
			want:  true,
		},
		{
			name:  "incident typed event",
			event: Event{Type: "incident_reported", Metadata: map[string]any{}},
			want:  true,
		},
		{
			name:  "high severity marker is case insensitive",
			event: Event{Type: "note", Metadata: map[string]any{"severity": "HIGH"}},
			want:  true,
		},
		{
			name:  "risk level marker",
			event: Event{Type: "note", Metadata: map[string]any{"riskLevel": "High"}},
			want:  true,
		},
		{
			name:  "plain note",
			event: Event{Type: "note", Metadata: map[string]any{"severity": "low"}},
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isIncident(tc.event); got != tc.want {
				t.Fatalf("isIncident = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildTimelinesSortsOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	early := now.Add(-2 * time.Hour)
	late := now.Add(-10 * time.Minute)

	events := []Event{
		{ID: 1, OrderID: 5, Type: "en_route", OccurredAt: &late, Metadata: map[string]any{}},
		{ID: 2, OrderID: 5, Type: "no_timestamp", Metadata: map[string]any{}},
		{ID: 3, OrderID: 5, Type: "created", OccurredAt: &early, Metadata: map[string]any{}},
	}

	timelines := buildTimelines(now, events)
	entries := timelines[5]
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != 2 || entries[1].ID != 3 || entries[2].ID != 1 {
		t.Fatalf("unexpected ordering: %d, %d, %d", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[2].Relative != "10m ago" {
		t.Fatalf("unexpected relative label %q", entries[2].Relative)
	}
}
