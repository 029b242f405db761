package workspace

import (
	"math"
	"time"
)

// ProviderSummary is the per-provider performance rollup shown on the
// workspace roster.
type ProviderSummary struct {
	Provider                 Provider `json:"provider"`
	TotalAssignments         int      `json:"totalAssignments"`
	ActiveAssignments        int      `json:"activeAssignments"`
	CompletedAssignments     int      `json:"completedAssignments"`
	Last30Days               int      `json:"last30Days"`
	IncidentCount            int      `json:"incidentCount"`
	AverageEtaMinutes        *int     `json:"averageEtaMinutes,omitempty"`
	AverageResolutionMinutes *int     `json:"averageResolutionMinutes,omitempty"`
	OnTimeRate               *int     `json:"onTimeRate,omitempty"`
}

// buildProviderSummaries rolls assignment outcomes up per provider. The
// provider slice fixes the output order, so the roster is stable across
// rebuilds regardless of assignment ordering.
func buildProviderSummaries(now time.Time, providers []Provider, assignments []Assignment) []ProviderSummary {
	byProvider := make(map[int64][]Assignment)
	for _, assignment := range assignments {
		if assignment.Provider == nil {
			continue
		}
		byProvider[assignment.Provider.ID] = append(byProvider[assignment.Provider.ID], assignment)
	}

	cutoff := now.Add(-30 * 24 * time.Hour)
	out := make([]ProviderSummary, 0, len(providers))
	for _, provider := range providers {
		summary := ProviderSummary{Provider: provider}

		var etaSum, resolutionSum float64
		var etaCount, resolutionCount, onTime int
		for _, assignment := range byProvider[provider.ID] {
			summary.TotalAssignments++
			completed := false
			if isTerminalStatus(assignment.Status) {
				if assignment.Status != "cancelled" {
					summary.CompletedAssignments++
					completed = true
				}
			} else {
				summary.ActiveAssignments++
			}
			if assignment.RequestedAt != nil && assignment.RequestedAt.After(cutoff) {
				summary.Last30Days++
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
					summary.IncidentCount++
				}
			}
		}

		if etaCount > 0 {
			avg := roundInt(etaSum / float64(etaCount))
			summary.AverageEtaMinutes = &avg
		}
		if resolutionCount > 0 {
			avg := roundInt(resolutionSum / float64(resolutionCount))
			summary.AverageResolutionMinutes = &avg
		}
		if summary.CompletedAssignments > 0 {
			rate := int(math.Round(float64(onTime) / float64(summary.CompletedAssignments) * 100))
			summary.OnTimeRate = &rate
		}

		out = append(out, summary)
	}

	return out
}
