// Package service implements the growth experiment use cases.
package service

import (
	"context"
	"time"

	"edulure_backend/internal/events"
	"edulure_backend/internal/growth/repository"
	"edulure_backend/platform/apperr"
	platformevents "edulure_backend/platform/events"

	"github.com/google/uuid"
)

// Service implements the growth use cases
type Service struct {
	repo     *repository.Repository
	eventBus platformevents.Bus
}

// New creates a new growth service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the domain event bus
func (s *Service) SetEventBus(bus platformevents.Bus) {
	s.eventBus = bus
}

// ExperimentInput contains validated experiment fields
type ExperimentInput struct {
	Name       string
	Hypothesis string
	MetricKey  string
	Variants   []repository.Variant
}

// ValidateVariants checks that an experiment splits its traffic fully:
// at least two arms, every weight positive, weights summing to 100.
func ValidateVariants(variants []repository.Variant) error {
	if len(variants) < 2 {
		return apperr.Validation("an experiment needs at least two variants")
	}

	total := 0
	seen := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		if variant.Key == "" {
			return apperr.Validation("every variant needs a key")
		}
		if _, dup := seen[variant.Key]; dup {
			return apperr.Validation("duplicate variant key " + variant.Key)
		}
		seen[variant.Key] = struct{}{}
		if variant.Weight <= 0 {
			return apperr.Validation("variant weights must be positive")
		}
		total += variant.Weight
	}
	if total != 100 {
		return apperr.Validation("variant weights must sum to 100")
	}
	return nil
}

// Create registers a stopped experiment.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, input ExperimentInput) (*repository.Experiment, error) {
	if err := ValidateVariants(input.Variants); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	exp := &repository.Experiment{
		ID:          uuid.New(),
		Name:        input.Name,
		Hypothesis:  input.Hypothesis,
		MetricKey:   input.MetricKey,
		Variants:    input.Variants,
		Running:     false,
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// List returns all experiments
func (s *Service) List(ctx context.Context) ([]repository.Experiment, error) {
	return s.repo.List(ctx)
}

// Get returns one experiment
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*repository.Experiment, error) {
	return s.repo.Get(ctx, id)
}

// Update edits a stopped experiment.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input ExperimentInput) (*repository.Experiment, error) {
	if err := ValidateVariants(input.Variants); err != nil {
		return nil, err
	}

	exp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.Running {
		return nil, apperr.Conflict("stop the experiment before editing it")
	}

	exp.Name = input.Name
	exp.Hypothesis = input.Hypothesis
	exp.MetricKey = input.MetricKey
	exp.Variants = input.Variants
	exp.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// SetRunning starts or stops an experiment, publishing the launch event
// when it starts.
func (s *Service) SetRunning(ctx context.Context, id uuid.UUID, running bool) (*repository.Experiment, error) {
	exp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp.Running == running {
		return exp, nil
	}

	exp.Running = running
	exp.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, exp); err != nil {
		return nil, err
	}

	if running && s.eventBus != nil {
		s.eventBus.Publish(ctx, events.ExperimentLaunched{
			BaseEvent:    events.NewBaseEvent(),
			ExperimentID: exp.ID,
			Name:         exp.Name,
		})
	}

	return exp, nil
}
