package workspace

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	earthRadiusKm = 6371.0

	// driveSpeedKmh is the assumed average urban field vehicle speed used
	// to turn straight-line distance into a drive estimate.
	driveSpeedKmh = 38.0

	minDriveMinutes = 5
)

// Waypoint is one leg endpoint of a route preview.
type Waypoint struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// RoutePreview is the provider-to-customer travel estimate for an active
// assignment.
type RoutePreview struct {
	DistanceKm      float64    `json:"distanceKm"`
	DriveMinutes    int        `json:"driveMinutes"`
	Summary         string     `json:"summary"`
	DepartureWindow string     `json:"departureWindow,omitempty"`
	Waypoints       []Waypoint `json:"waypoints"`
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(a, b GeoPoint) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// driveMinutes converts a distance into an estimated drive time with a
// floor so nearby jobs never show a zero-minute leg.
func driveMinutes(distanceKm float64) int {
	estimate := int(math.Round(distanceKm / driveSpeedKmh * 60))
	if estimate < minDriveMinutes {
		return minDriveMinutes
	}
	return estimate
}

// buildRoutePreview computes the live provider-to-customer route. When
// either endpoint lacks coordinates it falls back to a preview stored in
// the order metadata, and returns nil when neither is available.
func buildRoutePreview(now time.Time, order Order, provider *Provider) *RoutePreview {
	customerPoint, haveCustomer := order.Location.Point()
	if provider == nil || provider.Location == nil || !haveCustomer {
		return storedRoutePreview(order.Metadata)
	}

	providerPoint := GeoPoint{Lat: provider.Location.Lat, Lng: provider.Location.Lng}
	distance := haversineKm(providerPoint, customerPoint)
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return storedRoutePreview(order.Metadata)
	}
	minutes := driveMinutes(distance)

	preview := &RoutePreview{
		DistanceKm:   math.Round(distance*10) / 10,
		DriveMinutes: minutes,
		Summary:      fmt.Sprintf("%.1f km • ~%d min drive", distance, minutes),
		Waypoints: []Waypoint{
			{Label: waypointLabel(provider.Location.Label, provider.Name), Lat: providerPoint.Lat, Lng: providerPoint.Lng},
			{Label: waypointLabel(order.Location.Label, "Service location"), Lat: customerPoint.Lat, Lng: customerPoint.Lng},
		},
	}

	switch {
	case order.Status == "en_route" && provider.Location.UpdatedAt != nil:
		preview.DepartureWindow = "Departed " + strings.ToLower(relativeTime(now, provider.Location.UpdatedAt))
	case order.ScheduledAt != nil:
		departBy := order.ScheduledAt.Add(-time.Duration(minutes) * time.Minute)
		preview.DepartureWindow = "Depart by " + departBy.UTC().Format("15:04")
	}

	return preview
}

func waypointLabel(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

// storedRoutePreview reads a pre-computed preview written by the dispatch
// tooling into order metadata.
func storedRoutePreview(metadata map[string]any) *RoutePreview {
	raw, ok := metadata["routePreview"].(map[string]any)
	if !ok {
		return nil
	}

	distance := Decoded(raw["distanceKm"]).Float()
	if distance == nil || *distance < 0 {
		return nil
	}

	minutes := minDriveMinutes
	if m := Decoded(raw["driveMinutes"]).Float(); m != nil && *m > 0 {
		minutes = int(math.Round(*m))
	} else {
		minutes = driveMinutes(*distance)
	}

	preview := &RoutePreview{
		DistanceKm:   math.Round(*distance*10) / 10,
		DriveMinutes: minutes,
		Summary:      fmt.Sprintf("%.1f km • ~%d min drive", *distance, minutes),
		Waypoints:    []Waypoint{},
	}
	if s, ok := raw["summary"].(string); ok && s != "" {
		preview.Summary = s
	}
	if s, ok := raw["departureWindow"].(string); ok {
		preview.DepartureWindow = s
	}
	for _, item := range coerceWaypoints(raw["waypoints"]) {
		preview.Waypoints = append(preview.Waypoints, item)
	}

	return preview
}

func coerceWaypoints(v any) []Waypoint {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Waypoint, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lat := Decoded(obj["lat"]).Float()
		lng := Decoded(obj["lng"]).Float()
		if lat == nil || lng == nil {
			continue
		}
		label, _ := obj["label"].(string)
		out = append(out, Waypoint{Label: label, Lat: *lat, Lng: *lng})
	}
	return out
}
