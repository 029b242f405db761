// Package repository provides the cross-domain search query.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Hit is one row of the global search result
type Hit struct {
	Kind     string `db:"kind"`
	ID       string `db:"id"`
	Title    string `db:"title"`
	Subtitle string `db:"subtitle"`
}

// Repository runs the global search query
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new search repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Search runs one UNION query across service orders, support tickets, and
// experiments. Orders and tickets are scoped to the requesting user;
// experiments are global.
func (r *Repository) Search(ctx context.Context, userID uuid.UUID, term string, limit int) ([]Hit, error) {
	query := `
		SELECT 'order' AS kind, o.id::text, o.reference AS title, COALESCE(o.service_type, '') AS subtitle
		FROM field_orders o
		JOIN field_user_links l ON l.legacy_user_id IN (o.customer_user_id, o.provider_user_id)
		WHERE l.account_id = $1 AND (o.reference ILIKE $2 OR o.service_type ILIKE $2 OR o.summary ILIKE $2)
		UNION ALL
		SELECT 'ticket', t.id::text, t.subject, t.status
		FROM support_tickets t
		WHERE t.user_id = $1 AND (t.subject ILIKE $2 OR t.body ILIKE $2)
		UNION ALL
		SELECT 'experiment', e.id::text, e.name, e.metric_key
		FROM growth_experiments e
		WHERE e.name ILIKE $2 OR e.hypothesis ILIKE $2
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, userID, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to run search: %w", err)
	}
	defer rows.Close()

	var out []Hit
	for rows.Next() {
		var hit Hit
		if err := rows.Scan(&hit.Kind, &hit.ID, &hit.Title, &hit.Subtitle); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		out = append(out, hit)
	}
	return out, rows.Err()
}
