package workspace

import (
	"reflect"
	"testing"
)

func TestValueFloatCoercion(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  *float64
	}{
		{name: "absent", value: Value{}, want: nil},
		{name: "numeric", value: Number(3.5), want: floatPtr(3.5)},
		{name: "integer", value: Int64(7), want: floatPtr(7)},
		{name: "text number", value: Text(" 42.5 "), want: floatPtr(42.5)},
		{name: "garbage text", value: Text("soon"), want: nil},
		{name: "empty text", value: Text("   "), want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.value.Float()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("Float() = %v, want %v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("Float() = %f, want %f", *got, *tc.want)
			}
		})
	}
}

func TestValueIDRejectsNonIdentities(t *testing.T) {
	if _, ok := Text("abc").ID(); ok {
		t.Fatal("text identity should not parse")
	}
	if _, ok := Number(4.5).ID(); ok {
		t.Fatal("fractional identity should not parse")
	}
	if _, ok := Number(-3).ID(); ok {
		t.Fatal("negative identity should not parse")
	}
	id, ok := Text("12").ID()
	if !ok || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, ok)
	}
}

func TestBlobDegradesGracefully(t *testing.T) {
	if got := BlobText("{not json").Object(); len(got) != 0 {
		t.Fatalf("malformed blob should become empty object, got %v", got)
	}
	if got := BlobText(`{"a":1}`).Object(); got["a"] != float64(1) {
		t.Fatalf("expected decoded object, got %v", got)
	}
	if got := BlobText(`["x","y"]`).List(); len(got) != 2 {
		t.Fatalf("expected decoded list, got %v", got)
	}
	if got := (Blob{}).List(); len(got) != 0 {
		t.Fatalf("absent blob should become empty list, got %v", got)
	}
}

func TestCoerceStringListShapes(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "json array text", input: `["a"," b ",""]`, want: []string{"a", "b"}},
		{name: "csv text", input: "one, two ,,three", want: []string{"one", "two", "three"}},
		{name: "real array", input: []any{"x", float64(2), ""}, want: []string{"x", "2"}},
		{name: "object values", input: map[string]any{"b": "second", "a": "first"}, want: []string{"first", "second"}},
		{name: "unsupported", input: 12, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := coerceStringList(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("coerceStringList = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNormalizeOrderSkipsUnparseableIdentity(t *testing.T) {
	rows := []OrderRow{
		{ID: Text("not-a-number"), Reference: "SO-X"},
		{ID: Text("9"), Status: " EN_ROUTE "},
	}

	orders := normalizeOrders(rows)
	if len(orders) != 1 {
		t.Fatalf("expected one surviving order, got %d", len(orders))
	}
	if orders[0].ID != 9 {
		t.Fatalf("unexpected id %d", orders[0].ID)
	}
	if orders[0].Status != "en_route" {
		t.Fatalf("status should normalize lowercase, got %q", orders[0].Status)
	}
	if orders[0].Reference != "SO-9" {
		t.Fatalf("expected generated reference, got %q", orders[0].Reference)
	}
	if orders[0].Priority != "standard" {
		t.Fatalf("expected default priority, got %q", orders[0].Priority)
	}
}

func TestNormalizeProviderDefaultsAndAvatar(t *testing.T) {
	provider, ok := normalizeProvider(ProviderRow{
		ID:          Int64(3),
		Email:       " Tech@Example.COM ",
		Specialties: BlobText(`["HVAC","Electrical"]`),
	})
	if !ok {
		t.Fatal("expected provider to normalize")
	}
	if provider.Name != "Provider #3" {
		t.Fatalf("expected generated name, got %q", provider.Name)
	}
	if provider.Status != "active" {
		t.Fatalf("expected default status, got %q", provider.Status)
	}
	if !reflect.DeepEqual(provider.Specialties, []string{"HVAC", "Electrical"}) {
		t.Fatalf("unexpected specialties %v", provider.Specialties)
	}

	// Avatar derivation is case and whitespace insensitive on the email.
	other, _ := normalizeProvider(ProviderRow{ID: Int64(4), Email: "tech@example.com"})
	if provider.AvatarURL != other.AvatarURL {
		t.Fatalf("avatar should depend only on the normalized email: %q vs %q", provider.AvatarURL, other.AvatarURL)
	}

	anonymous, _ := normalizeProvider(ProviderRow{ID: Int64(5)})
	if anonymous.AvatarURL != "" {
		t.Fatalf("provider without an email should have no avatar, got %q", anonymous.AvatarURL)
	}
}

func TestContactDisplayNameFallbacks(t *testing.T) {
	if got := (Contact{FirstName: " Priya ", LastName: "Shah"}).DisplayName(); got != "Priya Shah" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := (Contact{Email: "ops@example.com"}).DisplayName(); got != "ops@example.com" {
		t.Fatalf("expected email fallback, got %q", got)
	}
	if got := (Contact{}).DisplayName(); got != "Service requester" {
		t.Fatalf("expected generic fallback, got %q", got)
	}
}

func TestNormalizeEventsDropsOrphans(t *testing.T) {
	rows := []EventRow{
		{ID: Int64(1), OrderID: Text("oops"), Type: "note"},
		{ID: Int64(2), OrderID: Int64(7), Type: " Incident_Reported "},
	}

	events := normalizeEvents(rows)
	if len(events) != 1 {
		t.Fatalf("expected one surviving event, got %d", len(events))
	}
	if events[0].OrderID != 7 || events[0].Type != "incident_reported" {
		t.Fatalf("unexpected event %+v", events[0])
	}
}
