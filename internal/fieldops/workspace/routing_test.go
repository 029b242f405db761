package workspace

import (
	"math"
	"testing"
	"time"
)

func TestHaversineKnownDistance(t *testing.T) {
	londonEye := GeoPoint{Lat: 51.5033, Lng: -0.1195}
	towerBridge := GeoPoint{Lat: 51.5055, Lng: -0.0754}

	got := haversineKm(londonEye, towerBridge)
	if got < 2.9 || got > 3.2 {
		t.Fatalf("expected roughly 3 km between landmarks, got %f", got)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	point := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	if got := haversineKm(point, point); got != 0 {
		t.Fatalf("expected zero distance, got %f", got)
	}
}

func TestDriveMinutesFloor(t *testing.T) {
	if got := driveMinutes(1.0); got != 5 {
		t.Fatalf("short hops should floor at 5 minutes, got %d", got)
	}
	if got := driveMinutes(38.0); got != 60 {
		t.Fatalf("expected 60 minutes for 38 km, got %d", got)
	}
}

func TestBuildRoutePreviewLiveRoute(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lat, lng := 51.5, -0.14
	order := Order{
		ID:       1,
		Location: Location{Label: "Customer site", Lat: &lat, Lng: &lng},
		Metadata: map[string]any{},
	}
	provider := &Provider{
		ID:       2,
		Name:     "Ada Field Services",
		Location: &ProviderLocation{Lat: 51.5, Lng: -0.12},
	}

	preview := buildRoutePreview(now, order, provider)
	if preview == nil {
		t.Fatal("expected a live route preview")
	}
	if preview.DistanceKm < 1.3 || preview.DistanceKm > 1.5 {
		t.Fatalf("unexpected distance %f", preview.DistanceKm)
	}
	if preview.DriveMinutes != 5 {
		t.Fatalf("expected floored drive minutes, got %d", preview.DriveMinutes)
	}
	if len(preview.Waypoints) != 2 {
		t.Fatalf("expected provider and customer waypoints, got %d", len(preview.Waypoints))
	}
	if preview.Waypoints[0].Label != "Ada Field Services" {
		t.Fatalf("unexpected origin label %q", preview.Waypoints[0].Label)
	}
}

func TestBuildRoutePreviewMetadataFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := Order{
		ID: 1,
		Metadata: map[string]any{
			"routePreview": map[string]any{
				"distanceKm":   "4.2",
				"driveMinutes": float64(9),
			},
		},
	}

	preview := buildRoutePreview(now, order, nil)
	if preview == nil {
		t.Fatal("expected fallback preview from metadata")
	}
	if preview.DistanceKm != 4.2 {
		t.Fatalf("unexpected distance %f", preview.DistanceKm)
	}
	if preview.DriveMinutes != 9 {
		t.Fatalf("unexpected drive minutes %d", preview.DriveMinutes)
	}
	if preview.Summary != "4.2 km • ~9 min drive" {
		t.Fatalf("unexpected summary %q", preview.Summary)
	}
}

func TestBuildRoutePreviewMissingEverything(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := Order{ID: 1, Metadata: map[string]any{}}
	if preview := buildRoutePreview(now, order, nil); preview != nil {
		t.Fatalf("expected nil preview, got %+v", preview)
	}
}

func TestBuildRoutePreviewRejectsNonFiniteDistance(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lat, lng := math.NaN(), -0.14
	order := Order{
		ID:       1,
		Location: Location{Lat: &lat, Lng: &lng},
		Metadata: map[string]any{},
	}
	provider := &Provider{ID: 2, Name: "P", Location: &ProviderLocation{Lat: 51.5, Lng: -0.12}}

	if preview := buildRoutePreview(now, order, provider); preview != nil {
		t.Fatalf("non-finite leg should yield no preview, got %+v", preview)
	}
}

func TestBuildRoutePreviewDepartureWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lat, lng := 51.5, -0.14
	scheduled := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	order := Order{
		ID:          1,
		Status:      "scheduled",
		ScheduledAt: &scheduled,
		Location:    Location{Lat: &lat, Lng: &lng},
		Metadata:    map[string]any{},
	}
	provider := &Provider{ID: 2, Name: "P", Location: &ProviderLocation{Lat: 51.5, Lng: -0.12}}

	preview := buildRoutePreview(now, order, provider)
	if preview == nil {
		t.Fatal("expected preview")
	}
	if preview.DepartureWindow != "Depart by 13:55" {
		t.Fatalf("unexpected departure window %q", preview.DepartureWindow)
	}
	if math.Abs(float64(preview.DriveMinutes)-5) > 0 {
		t.Fatalf("expected 5 minute leg, got %d", preview.DriveMinutes)
	}
}

func TestBuildRoutePreviewEnRouteDeparture(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lat, lng := 51.5, -0.14
	checkedIn := now.Add(-12 * time.Minute)
	order := Order{
		ID:       1,
		Status:   "en_route",
		Location: Location{Lat: &lat, Lng: &lng},
		Metadata: map[string]any{},
	}
	provider := &Provider{
		ID:       2,
		Name:     "P",
		Location: &ProviderLocation{Lat: 51.5, Lng: -0.12, UpdatedAt: &checkedIn},
	}

	preview := buildRoutePreview(now, order, provider)
	if preview == nil {
		t.Fatal("expected preview")
	}
	if preview.DepartureWindow != "Departed 12m ago" {
		t.Fatalf("unexpected departure window %q", preview.DepartureWindow)
	}
}
