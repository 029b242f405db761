package workspace

import (
	"reflect"
	"testing"
	"time"
)

func fixtureRows(now time.Time) ([]OrderRow, []EventRow, []ProviderRow) {
	requested := now.Add(-2 * time.Hour)
	scheduled := now.Add(45 * time.Minute)
	updated := now.Add(-10 * time.Minute)

	orders := []OrderRow{
		{
			ID:             Int64(101),
			Reference:      "SO-2026-101",
			CustomerUserID: Int64(7),
			ProviderUserID: Int64(9),
			Status:         "en_route",
			Priority:       "high",
			ServiceType:    "Classroom AV repair",
			RequestedAt:    &requested,
			ScheduledAt:    &scheduled,
			UpdatedAt:      &updated,
			EtaMinutes:     Number(15),
			SLAMinutes:     Number(60),
			Lat:            Number(51.5),
			Lng:            Number(-0.14),
			LocationLabel:  "Campus East",
			Metadata:       BlobText(`{"tags":["AV","av","Urgent"]}`),
			CustomerFirstName: "Priya",
			CustomerLastName:  "Shah",
			Provider: ProviderRow{
				ID:     Int64(31),
				UserID: Int64(9),
				Name:   "Ada Field Services",
				Email:  "ada@example.com",
				Status: "on_shift",
				Lat:    Number(51.5),
				Lng:    Number(-0.12),
			},
		},
	}

	reported := now.Add(-20 * time.Minute)
	departed := now.Add(-35 * time.Minute)
	events := []EventRow{
		{
			ID:         Int64(1),
			OrderID:    Int64(101),
			Type:       "en_route",
			OccurredAt: &departed,
		},
		{
			ID:         Int64(2),
			OrderID:    Int64(101),
			Type:       "incident_reported",
			Notes:      "Access gate locked",
			OccurredAt: &reported,
			Metadata:   BlobText(`{"severity":"HIGH"}`),
		},
	}

	providers := []ProviderRow{
		{
			ID:     Int64(31),
			UserID: Int64(9),
			Name:   "Ada Field Services",
			Phone:  "+44 20 7946 0000",
			Rating: Number(4.8),
		},
	}

	return orders, events, providers
}

func TestBuildEndToEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	orders, events, providers := fixtureRows(now)

	snapshot := Build(now, User{ID: 7}, orders, events, providers)

	customer := snapshot.Customer
	if len(customer.Assignments) != 1 {
		t.Fatalf("expected one customer assignment, got %d", len(customer.Assignments))
	}

	assignment := customer.Assignments[0]
	if assignment.RiskLevel != RiskCritical {
		t.Fatalf("high severity incident should force critical, got %q", assignment.RiskLevel)
	}
	if !assignment.SLABreached {
		t.Fatal("two hours against a one hour window is a breach")
	}
	if len(assignment.Timeline) != 2 {
		t.Fatalf("expected 2 timeline entries, got %d", len(assignment.Timeline))
	}
	if assignment.Timeline[0].Type != "en_route" || assignment.Timeline[1].Type != "incident_reported" {
		t.Fatalf("timeline should read oldest first, got %q then %q", assignment.Timeline[0].Type, assignment.Timeline[1].Type)
	}
	if assignment.Route == nil {
		t.Fatal("expected a live route preview")
	}
	if assignment.Route.DistanceKm < 1.3 || assignment.Route.DistanceKm > 1.5 {
		t.Fatalf("unexpected route distance %f", assignment.Route.DistanceKm)
	}
	if len(assignment.Reminders) != 3 {
		t.Fatalf("scheduled order should carry 3 reminders, got %d", len(assignment.Reminders))
	}

	// The provider row merges with the embedded copy: phone and rating
	// come from the roster, position from the order join.
	if assignment.Provider == nil {
		t.Fatal("expected a resolved provider")
	}
	if assignment.Provider.Phone != "+44 20 7946 0000" {
		t.Fatalf("roster phone should backfill, got %q", assignment.Provider.Phone)
	}
	if assignment.Provider.Location == nil {
		t.Fatal("embedded position should survive the merge")
	}

	if customer.Summary.Cards[0].Label != "Active services" || customer.Summary.Cards[0].Value != "1" {
		t.Fatalf("unexpected headline card %+v", customer.Summary.Cards[0])
	}
	if customer.Summary.Cards[3].Tone != ToneCritical {
		t.Fatalf("incident queue should be critical, got %q", customer.Summary.Cards[3].Tone)
	}
	if len(customer.Incidents) != 1 || customer.Incidents[0].Severity != "high" {
		t.Fatalf("unexpected incidents %v", customer.Incidents)
	}
	if len(customer.Map.Paths) != 1 {
		t.Fatalf("active assignment should plot one path, got %d", len(customer.Map.Paths))
	}

	// The provider scope belongs to user 9, not the requesting customer.
	if len(snapshot.Provider.Assignments) != 0 {
		t.Fatalf("customer should not see a provider scope, got %d assignments", len(snapshot.Provider.Assignments))
	}

	if len(snapshot.SearchIndex) != 1 {
		t.Fatalf("expected one search entry, got %d", len(snapshot.SearchIndex))
	}
	entry := snapshot.SearchIndex[0]
	if entry.Role != "learner" || entry.URL != "/field-services/orders/101" {
		t.Fatalf("unexpected search entry %+v", entry)
	}
}

func TestBuildProviderScope(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	orders, events, providers := fixtureRows(now)

	snapshot := Build(now, User{ID: 9}, orders, events, providers)

	if len(snapshot.Customer.Assignments) != 0 {
		t.Fatalf("provider should not see the customer scope, got %d", len(snapshot.Customer.Assignments))
	}
	if len(snapshot.Provider.Assignments) != 1 {
		t.Fatalf("expected one provider assignment, got %d", len(snapshot.Provider.Assignments))
	}
	if len(snapshot.Provider.Providers) != 1 {
		t.Fatalf("expected the operated provider on the roster, got %d", len(snapshot.Provider.Providers))
	}

	roster := snapshot.Provider.Providers[0]
	if roster.ActiveAssignments != 1 || roster.IncidentCount != 1 {
		t.Fatalf("unexpected roster rollup %+v", roster)
	}
	if snapshot.SearchIndex[0].Role != "instructor" {
		t.Fatalf("provider entries index under instructor, got %q", snapshot.SearchIndex[0].Role)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	orders, events, providers := fixtureRows(now)

	first := Build(now, User{ID: 7}, orders, events, providers)
	second := Build(now, User{ID: 7}, orders, events, providers)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical snapshots")
	}
}

func TestBuildEmptyScopeZeroState(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	snapshot := Build(now, User{ID: 1}, nil, nil, nil)

	cards := snapshot.Customer.Summary.Cards
	if len(cards) != 4 {
		t.Fatalf("empty scope still renders 4 cards, got %d", len(cards))
	}

	expect := []SummaryCard{
		{Label: "Active services", Value: "0", Tone: ToneSuccess},
		{Label: "Average ETA", Value: "—", Tone: ToneMuted},
		{Label: "On-time rate", Value: "—", Tone: ToneMuted},
		{Label: "Incident queue", Value: "0", Tone: ToneSuccess},
	}
	if !reflect.DeepEqual(cards, expect) {
		t.Fatalf("unexpected zero state cards %+v", cards)
	}

	if snapshot.Customer.Map.Center != defaultMapCenter {
		t.Fatalf("empty map should use the default center, got %+v", snapshot.Customer.Map.Center)
	}
	if snapshot.Customer.Assignments == nil || snapshot.Customer.Timeline == nil {
		t.Fatal("collections should be empty, not nil")
	}
}

func TestBuildNeverPanicsOnMalformedRows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	orders := []OrderRow{
		{ID: Text("garbage")},
		{ID: Int64(5), Metadata: BlobText("{broken"), EtaMinutes: Text("soon"), CustomerUserID: Int64(1)},
	}
	events := []EventRow{
		{OrderID: Text("nope"), Type: "note"},
		{OrderID: Int64(5), Metadata: BlobText("[[[")},
	}

	snapshot := Build(now, User{ID: 1}, orders, events, nil)
	if len(snapshot.Customer.Assignments) != 1 {
		t.Fatalf("expected the parseable order to survive, got %d", len(snapshot.Customer.Assignments))
	}
	if snapshot.Customer.Assignments[0].EtaMinutes != nil {
		t.Fatal("unparseable ETA should default to absent")
	}
}
