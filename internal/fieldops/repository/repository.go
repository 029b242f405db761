// Package repository provides database access for the field service
// operations module.
package repository

import (
	"context"
	"errors"
	"fmt"

	"edulure_backend/internal/fieldops/workspace"
	"edulure_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides database operations for field service orders,
// events, and providers. Several imported columns are stored as loose text
// and are surfaced as such; the workspace builder owns all coercion.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new field operations repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ResolveUserID maps a platform account to its numeric field operations
// identity. Field service rows predate the uuid account model and still key
// on the legacy integer id.
func (r *Repository) ResolveUserID(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var userID int64
	query := `SELECT legacy_user_id FROM field_user_links WHERE account_id = $1`
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("no field operations profile for this account")
		}
		return 0, fmt.Errorf("failed to resolve field user: %w", err)
	}
	return userID, nil
}

// ListOrderRows returns every service order visible to the given user,
// joined with the customer contact and the embedded provider columns.
func (r *Repository) ListOrderRows(ctx context.Context, userID int64) ([]workspace.OrderRow, error) {
	query := `
		SELECT
			o.id::text, o.reference, o.customer_id::text, o.customer_user_id::text,
			o.provider_id::text, o.provider_user_id::text,
			o.status, o.priority, o.service_type, o.summary,
			o.requested_at, o.scheduled_at, o.updated_at,
			o.eta_minutes, o.sla_minutes, o.distance_km,
			o.lat, o.lng, o.location_label, o.address, o.metadata,
			c.first_name, c.last_name, c.email,
			p.id::text, p.user_id::text, p.name, p.email, p.phone, p.status,
			p.specialties, p.rating, p.last_check_in_at,
			p.lat, p.lng, p.location_label, p.location_updated_at, p.metadata
		FROM field_orders o
		LEFT JOIN field_customers c ON c.id = o.customer_id
		LEFT JOIN field_providers p ON p.id = o.provider_id
		WHERE o.customer_user_id = $1 OR o.provider_user_id = $1
		ORDER BY o.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field orders: %w", err)
	}
	defer rows.Close()

	var out []workspace.OrderRow
	for rows.Next() {
		var (
			row                                    workspace.OrderRow
			id, reference                          *string
			customerID, customerUserID             *string
			providerID, providerUserID             *string
			status, priority, serviceType, summary *string
			etaMinutes, slaMinutes, distanceKm     *string
			lat, lng                               *float64
			locationLabel                          *string
			address, metadata                      []byte
			firstName, lastName, email             *string
			pID, pUserID, pName, pEmail, pPhone    *string
			pStatus, pLocationLabel                *string
			pSpecialties, pMetadata                []byte
			pRating                                *float64
			pLat, pLng                             *float64
		)

		err := rows.Scan(
			&id, &reference, &customerID, &customerUserID,
			&providerID, &providerUserID,
			&status, &priority, &serviceType, &summary,
			&row.RequestedAt, &row.ScheduledAt, &row.UpdatedAt,
			&etaMinutes, &slaMinutes, &distanceKm,
			&lat, &lng, &locationLabel, &address, &metadata,
			&firstName, &lastName, &email,
			&pID, &pUserID, &pName, &pEmail, &pPhone, &pStatus,
			&pSpecialties, &pRating, &row.Provider.LastCheckInAt,
			&pLat, &pLng, &pLocationLabel, &row.Provider.LocationUpdatedAt, &pMetadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field order: %w", err)
		}

		row.ID = textValue(id)
		row.Reference = deref(reference)
		row.CustomerID = textValue(customerID)
		row.CustomerUserID = textValue(customerUserID)
		row.ProviderID = textValue(providerID)
		row.ProviderUserID = textValue(providerUserID)
		row.Status = deref(status)
		row.Priority = deref(priority)
		row.ServiceType = deref(serviceType)
		row.Summary = deref(summary)
		row.EtaMinutes = textValue(etaMinutes)
		row.SLAMinutes = textValue(slaMinutes)
		row.DistanceKm = textValue(distanceKm)
		row.Lat = floatValue(lat)
		row.Lng = floatValue(lng)
		row.LocationLabel = deref(locationLabel)
		row.Address = workspace.BlobText(string(address))
		row.Metadata = workspace.BlobText(string(metadata))
		row.CustomerFirstName = deref(firstName)
		row.CustomerLastName = deref(lastName)
		row.CustomerEmail = deref(email)

		row.Provider.ID = textValue(pID)
		row.Provider.UserID = textValue(pUserID)
		row.Provider.Name = deref(pName)
		row.Provider.Email = deref(pEmail)
		row.Provider.Phone = deref(pPhone)
		row.Provider.Status = deref(pStatus)
		row.Provider.Specialties = workspace.BlobText(string(pSpecialties))
		row.Provider.Rating = floatValue(pRating)
		row.Provider.Lat = floatValue(pLat)
		row.Provider.Lng = floatValue(pLng)
		row.Provider.LocationLabel = deref(pLocationLabel)
		row.Provider.Metadata = workspace.BlobText(string(pMetadata))

		out = append(out, row)
	}

	return out, rows.Err()
}

// ListEventRows returns the service events for every order visible to the
// given user, oldest first.
func (r *Repository) ListEventRows(ctx context.Context, userID int64) ([]workspace.EventRow, error) {
	query := `
		SELECT e.id::text, e.order_id::text, e.type, e.status, e.notes,
		       e.author, e.occurred_at, e.metadata
		FROM field_order_events e
		JOIN field_orders o ON o.id = e.order_id
		WHERE o.customer_user_id = $1 OR o.provider_user_id = $1
		ORDER BY e.occurred_at NULLS LAST, e.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field order events: %w", err)
	}
	defer rows.Close()

	var out []workspace.EventRow
	for rows.Next() {
		var (
			row                      workspace.EventRow
			id, orderID              *string
			eventType, status, notes *string
			author                   *string
			metadata                 []byte
		)
		err := rows.Scan(&id, &orderID, &eventType, &status, &notes, &author, &row.OccurredAt, &metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field order event: %w", err)
		}

		row.ID = textValue(id)
		row.OrderID = textValue(orderID)
		row.Type = deref(eventType)
		row.Status = deref(status)
		row.Notes = deref(notes)
		row.Author = deref(author)
		row.Metadata = workspace.BlobText(string(metadata))
		out = append(out, row)
	}

	return out, rows.Err()
}

// ListProviderRows returns the full provider roster.
func (r *Repository) ListProviderRows(ctx context.Context) ([]workspace.ProviderRow, error) {
	query := `
		SELECT id::text, user_id::text, name, email, phone, status,
		       specialties, rating, last_check_in_at,
		       lat, lng, location_label, location_updated_at, metadata
		FROM field_providers
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list field providers: %w", err)
	}
	defer rows.Close()

	var out []workspace.ProviderRow
	for rows.Next() {
		var (
			row                        workspace.ProviderRow
			id, userID                 *string
			name, email, phone, status *string
			locationLabel              *string
			specialties, metadata      []byte
			rating, lat, lng           *float64
		)
		err := rows.Scan(
			&id, &userID, &name, &email, &phone, &status,
			&specialties, &rating, &row.LastCheckInAt,
			&lat, &lng, &locationLabel, &row.LocationUpdatedAt, &metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field provider: %w", err)
		}

		row.ID = textValue(id)
		row.UserID = textValue(userID)
		row.Name = deref(name)
		row.Email = deref(email)
		row.Phone = deref(phone)
		row.Status = deref(status)
		row.Specialties = workspace.BlobText(string(specialties))
		row.Rating = floatValue(rating)
		row.Lat = floatValue(lat)
		row.Lng = floatValue(lng)
		row.LocationLabel = deref(locationLabel)
		row.Metadata = workspace.BlobText(string(metadata))
		out = append(out, row)
	}

	return out, rows.Err()
}

func textValue(s *string) workspace.Value {
	if s == nil {
		return workspace.Value{}
	}
	return workspace.Text(*s)
}

func floatValue(f *float64) workspace.Value {
	if f == nil {
		return workspace.Value{}
	}
	return workspace.Number(*f)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
