package workspace

import (
	"fmt"
	"time"
)

// User identifies the requesting platform user. Workspace scopes are
// partitioned against this identity.
type User struct {
	ID int64
}

// Workspace is the assembled operational view for one scope.
type Workspace struct {
	Scope       string            `json:"scope"`
	Summary     Summary           `json:"summary"`
	Assignments []Assignment      `json:"assignments"`
	Timeline    []TimelineEvent   `json:"timeline"`
	Incidents   []Incident        `json:"incidents"`
	Providers   []ProviderSummary `json:"providers"`
	Map         MapModel          `json:"map"`
	LastUpdated time.Time         `json:"lastUpdated"`
}

// SearchEntry is one workspace record exposed to the global search index.
type SearchEntry struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Snapshot is the full build output: both scope workspaces plus the search
// index rows derived from them.
type Snapshot struct {
	Customer    Workspace     `json:"customer"`
	Provider    Workspace     `json:"provider"`
	SearchIndex []SearchEntry `json:"searchIndex"`
}

// Build assembles the field service workspace snapshot for one user from
// raw order, event, and provider rows.
//
// Build is pure: it performs no I/O, reads no clocks, and never panics on
// malformed rows. The same inputs always produce the same snapshot. An
// order appears in the customer scope when its customer user matches the
// requesting user, in the provider scope when its provider user matches,
// and in both when both match.
func Build(now time.Time, user User, orderRows []OrderRow, eventRows []EventRow, providerRows []ProviderRow) Snapshot {
	orders := normalizeOrders(orderRows)
	events := normalizeEvents(eventRows)
	roster := normalizeProviders(providerRows)

	reg := newRegistry(orders, roster)
	timelines := buildTimelines(now, events)

	assignments := make([]Assignment, 0, len(orders))
	for _, order := range orders {
		provider := reg.resolve(order)
		assignments = append(assignments, buildAssignment(now, order, provider, timelines[order.ID]))
	}

	var customerScope, providerScope []Assignment
	for _, assignment := range assignments {
		if assignment.CustomerUserID != nil && *assignment.CustomerUserID == user.ID {
			customerScope = append(customerScope, assignment)
		}
		if assignment.ProviderUserID != nil && *assignment.ProviderUserID == user.ID {
			providerScope = append(providerScope, assignment)
		}
	}

	snapshot := Snapshot{
		Customer: assembleScope(now, "customer", customerScope, scopeProviders(reg, customerScope, nil)),
		Provider: assembleScope(now, "provider", providerScope, scopeProviders(reg, providerScope, reg.ownedBy(user.ID))),
	}
	snapshot.SearchIndex = buildSearchIndex(snapshot)
	return snapshot
}

func assembleScope(now time.Time, scope string, assignments []Assignment, providers []Provider) Workspace {
	if assignments == nil {
		assignments = []Assignment{}
	}
	return Workspace{
		Scope:       scope,
		Summary:     buildSummary(assignments),
		Assignments: assignments,
		Timeline:    buildScopeTimeline(assignments),
		Incidents:   buildIncidents(assignments),
		Providers:   buildProviderSummaries(now, providers, assignments),
		Map:         buildMap(assignments),
		LastUpdated: now,
	}
}

// scopeProviders picks the roster for a scope: providers referenced by the
// scope's assignments plus any extras (providers the user operates), in
// registry first-seen order.
func scopeProviders(reg *registry, assignments []Assignment, extras []Provider) []Provider {
	include := make(map[int64]struct{})
	for _, assignment := range assignments {
		if assignment.Provider != nil {
			include[assignment.Provider.ID] = struct{}{}
		}
	}
	for _, provider := range extras {
		include[provider.ID] = struct{}{}
	}

	out := make([]Provider, 0, len(include))
	for _, provider := range reg.all() {
		if _, ok := include[provider.ID]; ok {
			out = append(out, provider)
		}
	}
	return out
}

// buildSearchIndex flattens both scopes into global search rows. Customer
// scope entries index under the learner role and provider scope entries
// under the instructor role, matching the platform's account model.
func buildSearchIndex(snapshot Snapshot) []SearchEntry {
	entries := make([]SearchEntry, 0, len(snapshot.Customer.Assignments)+len(snapshot.Provider.Assignments))
	for _, assignment := range snapshot.Customer.Assignments {
		entries = append(entries, searchEntry("learner", assignment))
	}
	for _, assignment := range snapshot.Provider.Assignments {
		entries = append(entries, searchEntry("instructor", assignment))
	}
	return entries
}

func searchEntry(role string, assignment Assignment) SearchEntry {
	return SearchEntry{
		ID:    fmt.Sprintf("%s-order-%d", role, assignment.OrderID),
		Role:  role,
		Title: fmt.Sprintf("%s · %s", assignment.Reference, assignment.ServiceType),
		URL:   fmt.Sprintf("/field-services/orders/%d", assignment.OrderID),
	}
}
