package workspace

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

const (
	defaultOrderStatus    = "pending"
	defaultOrderPriority  = "standard"
	defaultProviderStatus = "active"
	defaultEventType      = "update"
)

// Contact is the customer identity attached to an order.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DisplayName renders the customer for assignment and incident rows.
func (c Contact) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name != "" {
		return name
	}
	if email := strings.TrimSpace(c.Email); email != "" {
		return email
	}
	return "Service requester"
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is an order's service location. Coordinates are optional; rows
// frequently carry only a label.
type Location struct {
	Label string   `json:"label"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
}

// Point returns the coordinate pair when both axes are present.
func (l Location) Point() (GeoPoint, bool) {
	if l.Lat == nil || l.Lng == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: *l.Lat, Lng: *l.Lng}, true
}

// Order is a normalized service order. Every loose column has been coerced,
// defaulted, or dropped so downstream stages never re-validate.
type Order struct {
	ID             int64
	Reference      string
	CustomerID     *int64
	CustomerUserID *int64
	ProviderID     *int64
	ProviderUserID *int64
	Status         string
	Priority       string
	ServiceType    string
	Summary        string
	RequestedAt    *time.Time
	ScheduledAt    *time.Time
	UpdatedAt      *time.Time
	EtaMinutes     *float64
	SLAMinutes     *float64
	DistanceKm     *float64
	Location       Location
	Address        map[string]any
	Metadata       map[string]any
	Customer       Contact
	Provider       *Provider
}

// ProviderLocation is a provider's last reported position.
type ProviderLocation struct {
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Label     string     `json:"label,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Provider is a normalized field service provider.
type Provider struct {
	ID            int64             `json:"id"`
	UserID        *int64            `json:"userId,omitempty"`
	Name          string            `json:"name"`
	Email         string            `json:"email,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Status        string            `json:"status"`
	Specialties   []string          `json:"specialties"`
	Rating        *float64          `json:"rating,omitempty"`
	LastCheckInAt *time.Time        `json:"lastCheckInAt,omitempty"`
	Location      *ProviderLocation `json:"location,omitempty"`
	AvatarURL     string            `json:"avatarUrl,omitempty"`
	Metadata      map[string]any    `json:"-"`
}

// Event is a normalized service event tied to an order timeline.
type Event struct {
	ID         int64
	OrderID    int64
	Type       string
	Status     string
	Notes      string
	Author     string
	OccurredAt *time.Time
	Metadata   map[string]any
}

// normalizeOrders drops rows without a parseable numeric identity and
// coerces the rest. Input order is preserved.
func normalizeOrders(rows []OrderRow) []Order {
	out := make([]Order, 0, len(rows))
	for _, row := range rows {
		if order, ok := normalizeOrder(row); ok {
			out = append(out, order)
		}
	}
	return out
}

func normalizeOrder(row OrderRow) (Order, bool) {
	id, ok := row.ID.ID()
	if !ok {
		return Order{}, false
	}

	order := Order{
		ID:             id,
		Reference:      normalizeText(row.Reference, fmt.Sprintf("SO-%d", id)),
		CustomerID:     optionalID(row.CustomerID),
		CustomerUserID: optionalID(row.CustomerUserID),
		ProviderID:     optionalID(row.ProviderID),
		ProviderUserID: optionalID(row.ProviderUserID),
		Status:         normalizeToken(row.Status, defaultOrderStatus),
		Priority:       normalizeToken(row.Priority, defaultOrderPriority),
		ServiceType:    normalizeText(row.ServiceType, "General service"),
		Summary:        strings.TrimSpace(row.Summary),
		RequestedAt:    row.RequestedAt,
		ScheduledAt:    row.ScheduledAt,
		UpdatedAt:      row.UpdatedAt,
		EtaMinutes:     row.EtaMinutes.Float(),
		SLAMinutes:     row.SLAMinutes.Float(),
		DistanceKm:     row.DistanceKm.Float(),
		Location: Location{
			Label: strings.TrimSpace(row.LocationLabel),
			Lat:   row.Lat.Float(),
			Lng:   row.Lng.Float(),
		},
		Address:  row.Address.Object(),
		Metadata: row.Metadata.Object(),
		Customer: Contact{
			FirstName: strings.TrimSpace(row.CustomerFirstName),
			LastName:  strings.TrimSpace(row.CustomerLastName),
			Email:     strings.TrimSpace(row.CustomerEmail),
		},
	}

	if provider, ok := normalizeProvider(row.Provider); ok {
		order.Provider = &provider
		if order.ProviderID == nil {
			order.ProviderID = &provider.ID
		}
		if order.ProviderUserID == nil {
			order.ProviderUserID = provider.UserID
		}
	}

	if order.Location.Label == "" {
		order.Location.Label = addressLabel(order.Address)
	}

	return order, true
}

func normalizeProviders(rows []ProviderRow) []Provider {
	out := make([]Provider, 0, len(rows))
	for _, row := range rows {
		if provider, ok := normalizeProvider(row); ok {
			out = append(out, provider)
		}
	}
	return out
}

func normalizeProvider(row ProviderRow) (Provider, bool) {
	id, ok := row.ID.ID()
	if !ok {
		return Provider{}, false
	}

	provider := Provider{
		ID:            id,
		UserID:        optionalID(row.UserID),
		Name:          normalizeText(row.Name, fmt.Sprintf("Provider #%d", id)),
		Email:         strings.TrimSpace(row.Email),
		Phone:         strings.TrimSpace(row.Phone),
		Status:        normalizeToken(row.Status, defaultProviderStatus),
		Specialties:   coerceStringList(row.Specialties.value()),
		Rating:        row.Rating.Float(),
		LastCheckInAt: row.LastCheckInAt,
		Metadata:      row.Metadata.Object(),
	}
	provider.AvatarURL = avatarURL(provider.Email)

	if lat, lng := row.Lat.Float(), row.Lng.Float(); lat != nil && lng != nil {
		provider.Location = &ProviderLocation{
			Lat:       *lat,
			Lng:       *lng,
			Label:     strings.TrimSpace(row.LocationLabel),
			UpdatedAt: row.LocationUpdatedAt,
		}
	}

	return provider, true
}

func normalizeEvents(rows []EventRow) []Event {
	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		orderID, ok := row.OrderID.ID()
		if !ok {
			continue
		}
		event := Event{
			OrderID:    orderID,
			Type:       normalizeToken(row.Type, defaultEventType),
			Status:     normalizeToken(row.Status, ""),
			Notes:      strings.TrimSpace(row.Notes),
			Author:     strings.TrimSpace(row.Author),
			OccurredAt: row.OccurredAt,
			Metadata:   row.Metadata.Object(),
		}
		if id, ok := row.ID.ID(); ok {
			event.ID = id
		}
		out = append(out, event)
	}
	return out
}

// avatarURL derives a stable avatar from the provider email so rosters
// render consistently without storing image uploads. Providers without an
// email get none.
func avatarURL(email string) string {
	seed := strings.ToLower(strings.TrimSpace(email))
	if seed == "" {
		return ""
	}
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", md5.Sum([]byte(seed)))
}

func normalizeText(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

func normalizeToken(s, fallback string) string {
	if trimmed := strings.ToLower(strings.TrimSpace(s)); trimmed != "" {
		return trimmed
	}
	return fallback
}

func optionalID(v Value) *int64 {
	if id, ok := v.ID(); ok {
		return &id
	}
	return nil
}

func addressLabel(address map[string]any) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"street", "line1", "city", "postcode", "zip"} {
		if s, ok := address[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	return strings.Join(parts, ", ")
}
