// Package repository provides database access for growth experiments.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edulure_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Variant is one arm of an experiment
type Variant struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// Experiment is the database model for a growth experiment
type Experiment struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Hypothesis  string    `db:"hypothesis"`
	MetricKey   string    `db:"metric_key"`
	Variants    []Variant `db:"variants"`
	Running     bool      `db:"running"`
	CreatedByID uuid.UUID `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const experimentNotFoundMsg = "experiment not found"

// Repository provides database operations for experiments
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new growth repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an experiment
func (r *Repository) Create(ctx context.Context, exp *Experiment) error {
	variants, err := json.Marshal(exp.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	query := `
		INSERT INTO growth_experiments (id, name, hypothesis, metric_key, variants, running, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(ctx, query, exp.ID, exp.Name, exp.Hypothesis, exp.MetricKey,
		variants, exp.Running, exp.CreatedByID, exp.CreatedAt, exp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create experiment: %w", err)
	}
	return nil
}

// List returns all experiments, newest first
func (r *Repository) List(ctx context.Context) ([]Experiment, error) {
	query := `
		SELECT id, name, hypothesis, metric_key, variants, running, created_by, created_at, updated_at
		FROM growth_experiments ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var out []Experiment
	for rows.Next() {
		exp, err := scanExperiment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, exp)
	}
	return out, rows.Err()
}

// Get fetches one experiment
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*Experiment, error) {
	query := `
		SELECT id, name, hypothesis, metric_key, variants, running, created_by, created_at, updated_at
		FROM growth_experiments WHERE id = $1`

	exp, err := scanExperiment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(experimentNotFoundMsg)
		}
		return nil, err
	}
	return &exp, nil
}

// Update persists mutable experiment fields
func (r *Repository) Update(ctx context.Context, exp *Experiment) error {
	variants, err := json.Marshal(exp.Variants)
	if err != nil {
		return fmt.Errorf("failed to encode variants: %w", err)
	}

	query := `
		UPDATE growth_experiments
		SET name = $1, hypothesis = $2, metric_key = $3, variants = $4, running = $5, updated_at = $6
		WHERE id = $7`
	tag, err := r.pool.Exec(ctx, query, exp.Name, exp.Hypothesis, exp.MetricKey,
		variants, exp.Running, exp.UpdatedAt, exp.ID)
	if err != nil {
		return fmt.Errorf("failed to update experiment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(experimentNotFoundMsg)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperiment(row rowScanner) (Experiment, error) {
	var exp Experiment
	var variants []byte
	err := row.Scan(&exp.ID, &exp.Name, &exp.Hypothesis, &exp.MetricKey, &variants,
		&exp.Running, &exp.CreatedByID, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Experiment{}, err
		}
		return Experiment{}, fmt.Errorf("failed to scan experiment: %w", err)
	}
	if err := json.Unmarshal(variants, &exp.Variants); err != nil {
		return Experiment{}, fmt.Errorf("failed to decode variants: %w", err)
	}
	return exp, nil
}
