// Package repository provides database access for support tickets.
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

// Ticket is the database model for a support ticket
type Ticket struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Subject      string    `db:"subject"`
	Body         string    `db:"body"`
	Status       string    `db:"status"`
	Priority     string    `db:"priority"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Reply is the database model for a ticket reply
type Reply struct {
	ID        uuid.UUID `db:"id"`
	TicketID  uuid.UUID `db:"ticket_id"`
	AuthorID  uuid.UUID `db:"author_id"`
	Body      string    `db:"body"`
	FromStaff bool      `db:"from_staff"`
	CreatedAt time.Time `db:"created_at"`
}

const ticketNotFoundMsg = "ticket not found"

// Repository provides database operations for support tickets
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new support repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a ticket
func (r *Repository) Create(ctx context.Context, ticket *Ticket) error {
	query := `
		INSERT INTO support_tickets (id, user_id, subject, body, status, priority, contact_email, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query, ticket.ID, ticket.UserID, ticket.Subject, ticket.Body,
		ticket.Status, ticket.Priority, ticket.ContactEmail, ticket.ContactPhone,
		ticket.CreatedAt, ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// List returns the user's tickets, newest first
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	query := `
		SELECT id, user_id, subject, body, status, priority, contact_email, contact_phone, created_at, updated_at
		FROM support_tickets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Body, &t.Status, &t.Priority,
			&t.ContactEmail, &t.ContactPhone, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Get fetches one ticket scoped to the user
func (r *Repository) Get(ctx context.Context, userID, ticketID uuid.UUID) (*Ticket, error) {
	query := `
		SELECT id, user_id, subject, body, status, priority, contact_email, contact_phone, created_at, updated_at
		FROM support_tickets WHERE id = $1 AND user_id = $2`

	var t Ticket
	err := r.pool.QueryRow(ctx, query, ticketID, userID).Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Body, &t.Status, &t.Priority,
		&t.ContactEmail, &t.ContactPhone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(ticketNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &t, nil
}

// UpdateStatus transitions a ticket's status
func (r *Repository) UpdateStatus(ctx context.Context, userID, ticketID uuid.UUID, status string) error {
	query := `UPDATE support_tickets SET status = $1, updated_at = now() WHERE id = $2 AND user_id = $3`

	tag, err := r.pool.Exec(ctx, query, status, ticketID, userID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(ticketNotFoundMsg)
	}
	return nil
}

// CreateReply appends a reply and touches the ticket in one transaction
func (r *Repository) CreateReply(ctx context.Context, reply *Reply) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO support_ticket_replies (id, ticket_id, author_id, body, from_staff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(ctx, query, reply.ID, reply.TicketID, reply.AuthorID, reply.Body, reply.FromStaff, reply.CreatedAt); err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE support_tickets SET updated_at = now() WHERE id = $1`, reply.TicketID); err != nil {
		return fmt.Errorf("failed to touch ticket: %w", err)
	}

	return tx.Commit(ctx)
}

// ListReplies returns a ticket's replies, oldest first
func (r *Repository) ListReplies(ctx context.Context, ticketID uuid.UUID) ([]Reply, error) {
	query := `
		SELECT id, ticket_id, author_id, body, from_staff, created_at
		FROM support_ticket_replies WHERE ticket_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	defer rows.Close()

	var out []Reply
	for rows.Next() {
		var reply Reply
		err := rows.Scan(&reply.ID, &reply.TicketID, &reply.AuthorID, &reply.Body, &reply.FromStaff, &reply.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		out = append(out, reply)
	}
	return out, rows.Err()
}
