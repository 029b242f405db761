package workspace

import (
	"math"
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildSummaryCounts(t *testing.T) {
	assignments := []Assignment{
		{Status: "en_route", RiskLevel: RiskCritical, EtaMinutes: floatPtr(20), SLABreached: true},
		{Status: "completed", RiskLevel: RiskClosed, EtaMinutes: floatPtr(40), ResolutionMinutes: floatPtr(55), OnTime: boolPtr(true)},
		{Status: "completed", RiskLevel: RiskClosed, ResolutionMinutes: floatPtr(85), OnTime: boolPtr(false)},
		{Status: "cancelled", RiskLevel: RiskCancelled},
	}

	summary := buildSummary(assignments)
	if summary.TotalCount != 4 || summary.ActiveCount != 1 || summary.CompletedCount != 2 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if summary.SLABreachCount != 1 {
		t.Fatalf("expected one breach, got %d", summary.SLABreachCount)
	}

	// The ETA average spans every assignment carrying one, active or not.
	if summary.AverageEtaMinutes == nil || *summary.AverageEtaMinutes != 30 {
		t.Fatalf("unexpected ETA average %v", summary.AverageEtaMinutes)
	}
	if summary.AverageResolutionMinutes == nil || *summary.AverageResolutionMinutes != 70 {
		t.Fatalf("unexpected resolution average %v", summary.AverageResolutionMinutes)
	}
	// On-time rate divides by completed work, not everything with an SLA.
	if summary.OnTimeRate == nil || *summary.OnTimeRate != 50 {
		t.Fatalf("unexpected on-time rate %v", summary.OnTimeRate)
	}
	if summary.Cards[2].Value != "50%" {
		t.Fatalf("unexpected on-time card %+v", summary.Cards[2])
	}
	if summary.Cards[1].Value != "~30 min" {
		t.Fatalf("unexpected ETA card %+v", summary.Cards[1])
	}
}

func TestBuildMapCenterIsBoundingBoxMidpoint(t *testing.T) {
	lat1, lng1 := 51.0, -0.2
	lat2, lng2 := 53.0, 0.6

	assignments := []Assignment{
		{OrderID: 1, Reference: "SO-1", Status: "pending", Location: Location{Lat: &lat1, Lng: &lng1}},
		{OrderID: 2, Reference: "SO-2", Status: "pending", Location: Location{Lat: &lat2, Lng: &lng2}},
	}

	model := buildMap(assignments)
	if model.Bounds == nil {
		t.Fatal("expected bounds")
	}
	if math.Abs(model.Center.Lat-52.0) > 1e-9 || math.Abs(model.Center.Lng-0.2) > 1e-9 {
		t.Fatalf("unexpected center %+v", model.Center)
	}
}

func TestBuildProviderSummariesRollup(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	provider := Provider{ID: 31, Name: "Ada Field Services"}
	recent := now.Add(-5 * 24 * time.Hour)
	old := now.Add(-45 * 24 * time.Hour)

	assignments := []Assignment{
		{
			Status:      "en_route",
			Provider:    &provider,
			RequestedAt: &recent,
			EtaMinutes:  floatPtr(30),
		},
		{
			Status:            "completed",
			Provider:          &provider,
			RequestedAt:       &old,
			EtaMinutes:        floatPtr(10),
			ResolutionMinutes: floatPtr(40),
			OnTime:            boolPtr(true),
		},
		{
			Status:      "cancelled",
			Provider:    &provider,
			RequestedAt: &recent,
		},
	}

	summaries := buildProviderSummaries(now, []Provider{provider}, assignments)
	if len(summaries) != 1 {
		t.Fatalf("expected one roster entry, got %d", len(summaries))
	}

	got := summaries[0]
	if got.TotalAssignments != 3 || got.ActiveAssignments != 1 || got.CompletedAssignments != 1 {
		t.Fatalf("unexpected rollup %+v", got)
	}
	if got.Last30Days != 2 {
		t.Fatalf("trailing window keys on the request time, got %d", got.Last30Days)
	}
	// The ETA average spans every assignment that carried one.
	if got.AverageEtaMinutes == nil || *got.AverageEtaMinutes != 20 {
		t.Fatalf("unexpected ETA average %v", got.AverageEtaMinutes)
	}
	if got.OnTimeRate == nil || *got.OnTimeRate != 100 {
		t.Fatalf("unexpected on-time rate %v", got.OnTimeRate)
	}
	if got.AverageResolutionMinutes == nil || *got.AverageResolutionMinutes != 40 {
		t.Fatalf("unexpected resolution average %v", got.AverageResolutionMinutes)
	}
}
