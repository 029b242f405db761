package workspace

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Card tones understood by the dashboard.
const (
	ToneSuccess  = "success"
	ToneInfo     = "info"
	ToneWarning  = "warning"
	ToneCritical = "critical"
	ToneMuted    = "muted"
)

// timelineCap bounds the scope-wide activity feed.
const timelineCap = 40

// defaultMapCenter keeps empty maps anchored on the London service area.
var defaultMapCenter = GeoPoint{Lat: 51.509865, Lng: -0.118092}

// SummaryCard is one headline stat on the workspace dashboard.
type SummaryCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  string `json:"tone"`
	Hint  string `json:"hint,omitempty"`
}

// Summary is the dashboard header for one workspace scope.
type Summary struct {
	Cards                    []SummaryCard `json:"cards"`
	TotalCount               int           `json:"totalCount"`
	ActiveCount              int           `json:"activeCount"`
	CompletedCount           int           `json:"completedCount"`
	IncidentCount            int           `json:"incidentCount"`
	SLABreachCount           int           `json:"slaBreachCount"`
	AverageEtaMinutes        *int          `json:"averageEtaMinutes,omitempty"`
	AverageResolutionMinutes *int          `json:"averageResolutionMinutes,omitempty"`
	OnTimeRate               *int          `json:"onTimeRate,omitempty"`
}

// Incident is one open incident surfaced on the workspace queue.
type Incident struct {
	OrderID        int64      `json:"orderId"`
	OrderReference string     `json:"orderReference"`
	Label          string     `json:"label"`
	Notes          string     `json:"notes,omitempty"`
	Severity       string     `json:"severity,omitempty"`
	Owner          string     `json:"owner,omitempty"`
	NextAction     string     `json:"nextAction"`
	OccurredAt     *time.Time `json:"occurredAt,omitempty"`
	Relative       string     `json:"relative,omitempty"`
}

// MapPoint is one marker on the workspace map.
type MapPoint struct {
	Kind    string  `json:"kind"`
	Label   string  `json:"label"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	OrderID int64   `json:"orderId,omitempty"`
}

// MapPath is a provider-to-customer leg for one active assignment.
type MapPath struct {
	OrderID int64      `json:"orderId"`
	Points  []GeoPoint `json:"points"`
}

// Bounds is the bounding box of all plotted points.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// MapModel is the geographic view for one workspace scope.
type MapModel struct {
	Center GeoPoint   `json:"center"`
	Bounds *Bounds    `json:"bounds,omitempty"`
	Points []MapPoint `json:"points"`
	Paths  []MapPath  `json:"paths"`
}

// buildSummary derives the four headline cards from a scope's assignments.
// An empty scope still renders the full card set in its zero state.
func buildSummary(assignments []Assignment) Summary {
	summary := Summary{}

	var active, criticalActive int
	var etaSum, resolutionSum float64
	var etaCount, resolutionCount int
	var onTime int
	var incidents, highIncidents int

	for _, assignment := range assignments {
		summary.TotalCount++
		if assignment.SLABreached {
			summary.SLABreachCount++
		}
		completed := false
		if isTerminalStatus(assignment.Status) {
			if assignment.Status != "cancelled" {
				summary.CompletedCount++
				completed = true
			}
		} else {
			active++
			if assignment.RiskLevel == RiskCritical {
				criticalActive++
			}
		}
		if assignment.EtaMinutes != nil {
			etaSum += *assignment.EtaMinutes
			etaCount++
		}
		if assignment.ResolutionMinutes != nil {
			resolutionSum += *assignment.ResolutionMinutes
			resolutionCount++
		}
		if completed && assignment.OnTime != nil && *assignment.OnTime {
			onTime++
		}
		for _, entry := range assignment.Timeline {
			if entry.IsIncident {
				incidents++
				if entry.Severity == "high" {
					highIncidents++
				}
			}
		}
	}

	summary.ActiveCount = active
	summary.IncidentCount = incidents
	if etaCount > 0 {
		avg := roundInt(etaSum / float64(etaCount))
		summary.AverageEtaMinutes = &avg
	}
	if resolutionCount > 0 {
		avg := roundInt(resolutionSum / float64(resolutionCount))
		summary.AverageResolutionMinutes = &avg
	}
	if summary.CompletedCount > 0 {
		rate := roundInt(float64(onTime) / float64(summary.CompletedCount) * 100)
		summary.OnTimeRate = &rate
	}

	activeCard := SummaryCard{Label: "Active services", Value: strconv.Itoa(active)}
	switch {
	case active == 0:
		activeCard.Tone = ToneSuccess
	case criticalActive > 0:
		activeCard.Tone = ToneInfo
		activeCard.Hint = fmt.Sprintf("%d flagged critical", criticalActive)
	default:
		activeCard.Tone = ToneInfo
	}

	etaCard := SummaryCard{Label: "Average ETA", Value: "—", Tone: ToneMuted}
	if summary.AverageEtaMinutes != nil {
		avg := *summary.AverageEtaMinutes
		etaCard.Value = fmt.Sprintf("~%d min", avg)
		if avg <= 25 {
			etaCard.Tone = ToneSuccess
		} else {
			etaCard.Tone = ToneInfo
		}
	}

	onTimeCard := SummaryCard{Label: "On-time rate", Value: "—", Tone: ToneMuted}
	if summary.OnTimeRate != nil {
		rate := *summary.OnTimeRate
		onTimeCard.Value = fmt.Sprintf("%d%%", rate)
		switch {
		case rate >= 90:
			onTimeCard.Tone = ToneSuccess
		case rate >= 70:
			onTimeCard.Tone = ToneWarning
		default:
			onTimeCard.Tone = ToneCritical
		}
	}

	incidentCard := SummaryCard{Label: "Incident queue", Value: strconv.Itoa(incidents)}
	switch {
	case highIncidents > 0:
		incidentCard.Tone = ToneCritical
		incidentCard.Hint = fmt.Sprintf("%d high severity", highIncidents)
	case incidents > 0:
		incidentCard.Tone = ToneWarning
	default:
		incidentCard.Tone = ToneSuccess
	}

	summary.Cards = []SummaryCard{activeCard, etaCard, onTimeCard, incidentCard}
	return summary
}

// buildScopeTimeline flattens every assignment timeline into one feed,
// newest first, capped so the dashboard stays bounded.
func buildScopeTimeline(assignments []Assignment) []TimelineEvent {
	feed := make([]TimelineEvent, 0, len(assignments)*2)
	for _, assignment := range assignments {
		feed = append(feed, assignment.Timeline...)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		left, right := feed[i].OccurredAt, feed[j].OccurredAt
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	if len(feed) > timelineCap {
		feed = feed[:timelineCap]
	}
	return feed
}

// buildIncidents lists open incidents across a scope, newest first.
func buildIncidents(assignments []Assignment) []Incident {
	out := make([]Incident, 0)
	for _, assignment := range assignments {
		owner := ""
		if assignment.Provider != nil {
			owner = assignment.Provider.Name
		}
		for _, entry := range assignment.Timeline {
			if !entry.IsIncident {
				continue
			}
			out = append(out, Incident{
				OrderID:        assignment.OrderID,
				OrderReference: assignment.Reference,
				Label:          entry.Label,
				Notes:          entry.Notes,
				Severity:       entry.Severity,
				Owner:          owner,
				NextAction:     assignment.NextAction,
				OccurredAt:     entry.OccurredAt,
				Relative:       entry.Relative,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		left, right := out[i].OccurredAt, out[j].OccurredAt
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.After(*right)
	})

	return out
}

// buildMap plots customer locations, provider positions, and active legs.
// With nothing to plot the map stays centered on the default service area.
func buildMap(assignments []Assignment) MapModel {
	model := MapModel{
		Center: defaultMapCenter,
		Points: []MapPoint{},
		Paths:  []MapPath{},
	}

	seenProviders := make(map[int64]struct{})
	for _, assignment := range assignments {
		customerPoint, haveCustomer := assignment.Location.Point()
		if haveCustomer {
			model.Points = append(model.Points, MapPoint{
				Kind:    "customer",
				Label:   assignment.Reference,
				Lat:     customerPoint.Lat,
				Lng:     customerPoint.Lng,
				OrderID: assignment.OrderID,
			})
		}

		provider := assignment.Provider
		if provider == nil || provider.Location == nil {
			continue
		}
		if _, dup := seenProviders[provider.ID]; !dup {
			seenProviders[provider.ID] = struct{}{}
			model.Points = append(model.Points, MapPoint{
				Kind:  "provider",
				Label: provider.Name,
				Lat:   provider.Location.Lat,
				Lng:   provider.Location.Lng,
			})
		}
		if haveCustomer && !isTerminalStatus(assignment.Status) {
			model.Paths = append(model.Paths, MapPath{
				OrderID: assignment.OrderID,
				Points: []GeoPoint{
					{Lat: provider.Location.Lat, Lng: provider.Location.Lng},
					customerPoint,
				},
			})
		}
	}

	if len(model.Points) == 0 {
		return model
	}

	bounds := Bounds{
		MinLat: model.Points[0].Lat,
		MaxLat: model.Points[0].Lat,
		MinLng: model.Points[0].Lng,
		MaxLng: model.Points[0].Lng,
	}
	for _, point := range model.Points {
		if point.Lat < bounds.MinLat {
			bounds.MinLat = point.Lat
		}
		if point.Lat > bounds.MaxLat {
			bounds.MaxLat = point.Lat
		}
		if point.Lng < bounds.MinLng {
			bounds.MinLng = point.Lng
		}
		if point.Lng > bounds.MaxLng {
			bounds.MaxLng = point.Lng
		}
	}
	model.Bounds = &bounds
	model.Center = GeoPoint{
		Lat: (bounds.MinLat + bounds.MaxLat) / 2,
		Lng: (bounds.MinLng + bounds.MaxLng) / 2,
	}

	return model
}
