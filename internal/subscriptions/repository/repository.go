// Package repository provides database access for subscriptions.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edulure_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Subscription is the database model for a plan subscription
type Subscription struct {
	ID               uuid.UUID  `db:"id"`
	UserID           uuid.UUID  `db:"user_id"`
	PlanCode         string     `db:"plan_code"`
	Status           string     `db:"status"`
	PriceCents       int64      `db:"price_cents"`
	Currency         string     `db:"currency"`
	Interval         string     `db:"billing_interval"`
	CurrentPeriodEnd *time.Time `db:"current_period_end"`
	CancelledAt      *time.Time `db:"cancelled_at"`
	CancelReason     *string    `db:"cancel_reason"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const subscriptionNotFoundMsg = "subscription not found"

// Repository provides database operations for subscriptions
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new subscriptions repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a subscription
func (r *Repository) Create(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, plan_code, status, price_cents, currency, billing_interval,
		                           current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query, sub.ID, sub.UserID, sub.PlanCode, sub.Status,
		sub.PriceCents, sub.Currency, sub.Interval, sub.CurrentPeriodEnd, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// List returns the user's subscriptions, newest first
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Subscription, error) {
	query := selectColumns + ` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Get fetches one subscription scoped to the user
func (r *Repository) Get(ctx context.Context, userID, subID uuid.UUID) (*Subscription, error) {
	query := selectColumns + ` FROM subscriptions WHERE id = $1 AND user_id = $2`

	row := r.pool.QueryRow(ctx, query, subID, userID)
	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(subscriptionNotFoundMsg)
		}
		return nil, err
	}
	return &sub, nil
}

// Update persists mutable subscription fields
func (r *Repository) Update(ctx context.Context, sub *Subscription) error {
	query := `
		UPDATE subscriptions
		SET plan_code = $1, status = $2, price_cents = $3, current_period_end = $4,
		    cancelled_at = $5, cancel_reason = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`

	tag, err := r.pool.Exec(ctx, query, sub.PlanCode, sub.Status, sub.PriceCents,
		sub.CurrentPeriodEnd, sub.CancelledAt, sub.CancelReason, sub.UpdatedAt, sub.ID, sub.UserID)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(subscriptionNotFoundMsg)
	}
	return nil
}

const selectColumns = `
	SELECT id, user_id, plan_code, status, price_cents, currency, billing_interval,
	       current_period_end, cancelled_at, cancel_reason, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (Subscription, error) {
	var sub Subscription
	err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanCode, &sub.Status, &sub.PriceCents,
		&sub.Currency, &sub.Interval, &sub.CurrentPeriodEnd, &sub.CancelledAt,
		&sub.CancelReason, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("failed to scan subscription: %w", err)
	}
	return sub, nil
}
