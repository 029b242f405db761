// Package repository provides database access for billing.
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

// Invoice is the database model for an invoice
type Invoice struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	Number      string     `db:"number"`
	Status      string     `db:"status"`
	Description string     `db:"description"`
	AmountCents int64      `db:"amount_cents"`
	Currency    string     `db:"currency"`
	DueAt       *time.Time `db:"due_at"`
	PaidAt      *time.Time `db:"paid_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// PaymentMethod is the database model for a stored payment method
type PaymentMethod struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      string    `db:"kind"`
	Brand     string    `db:"brand"`
	Last4     string    `db:"last4"`
	ExpMonth  int       `db:"exp_month"`
	ExpYear   int       `db:"exp_year"`
	IsDefault bool      `db:"is_default"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	invoiceNotFoundMsg       = "invoice not found"
	paymentMethodNotFoundMsg = "payment method not found"
)

// Repository provides database operations for billing
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new billing repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextInvoiceNumber atomically generates the next invoice number.
func (r *Repository) NextInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	query := `
		INSERT INTO invoice_counters (year, last_number)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_number = invoice_counters.last_number + 1
		RETURNING last_number`

	year := time.Now().UTC().Year()
	if err := r.pool.QueryRow(ctx, query, year).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%05d", year, nextNum), nil
}

// CreateInvoice inserts an invoice
func (r *Repository) CreateInvoice(ctx context.Context, invoice *Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, number, status, description, amount_cents, currency, due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		invoice.ID, invoice.UserID, invoice.Number, invoice.Status, invoice.Description,
		invoice.AmountCents, invoice.Currency, invoice.DueAt, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// ListInvoices returns the user's invoices, newest first
func (r *Repository) ListInvoices(ctx context.Context, userID uuid.UUID) ([]Invoice, error) {
	query := `
		SELECT id, user_id, number, status, description, amount_cents, currency, due_at, paid_at, created_at, updated_at
		FROM invoices WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		var inv Invoice
		err := rows.Scan(&inv.ID, &inv.UserID, &inv.Number, &inv.Status, &inv.Description,
			&inv.AmountCents, &inv.Currency, &inv.DueAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// GetInvoice fetches one invoice scoped to the user
func (r *Repository) GetInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (*Invoice, error) {
	query := `
		SELECT id, user_id, number, status, description, amount_cents, currency, due_at, paid_at, created_at, updated_at
		FROM invoices WHERE id = $1 AND user_id = $2`

	var inv Invoice
	err := r.pool.QueryRow(ctx, query, invoiceID, userID).Scan(
		&inv.ID, &inv.UserID, &inv.Number, &inv.Status, &inv.Description,
		&inv.AmountCents, &inv.Currency, &inv.DueAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(invoiceNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &inv, nil
}

// UpdateInvoiceStatus transitions an invoice's status, stamping paid_at
// when it becomes paid.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID uuid.UUID, status string, paidAt *time.Time) error {
	query := `
		UPDATE invoices SET status = $1, paid_at = COALESCE($2, paid_at), updated_at = now()
		WHERE id = $3 AND user_id = $4`

	tag, err := r.pool.Exec(ctx, query, status, paidAt, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(invoiceNotFoundMsg)
	}
	return nil
}

// ListPaymentMethods returns the user's stored payment methods
func (r *Repository) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]PaymentMethod, error) {
	query := `
		SELECT id, user_id, kind, brand, last4, exp_month, exp_year, is_default, created_at
		FROM payment_methods WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var out []PaymentMethod
	for rows.Next() {
		var pm PaymentMethod
		err := rows.Scan(&pm.ID, &pm.UserID, &pm.Kind, &pm.Brand, &pm.Last4,
			&pm.ExpMonth, &pm.ExpYear, &pm.IsDefault, &pm.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		out = append(out, pm)
	}
	return out, rows.Err()
}

// CreatePaymentMethod inserts a payment method, clearing the previous
// default in the same transaction when the new one is default.
func (r *Repository) CreatePaymentMethod(ctx context.Context, pm *PaymentMethod) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if pm.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default = false WHERE user_id = $1`, pm.UserID); err != nil {
			return fmt.Errorf("failed to clear default payment method: %w", err)
		}
	}

	query := `
		INSERT INTO payment_methods (id, user_id, kind, brand, last4, exp_month, exp_year, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = tx.Exec(ctx, query, pm.ID, pm.UserID, pm.Kind, pm.Brand, pm.Last4,
		pm.ExpMonth, pm.ExpYear, pm.IsDefault, pm.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return tx.Commit(ctx)
}

// SetDefaultPaymentMethod marks one method default and clears the rest.
func (r *Repository) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default = false WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear default payment method: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE payment_methods SET is_default = true WHERE id = $1 AND user_id = $2`, methodID, userID)
	if err != nil {
		return fmt.Errorf("failed to set default payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(paymentMethodNotFoundMsg)
	}

	return tx.Commit(ctx)
}

// DeletePaymentMethod removes a payment method
func (r *Repository) DeletePaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`, methodID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(paymentMethodNotFoundMsg)
	}
	return nil
}
