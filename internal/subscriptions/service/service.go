// Package service implements the subscription use cases.
package service

import (
	"context"
	"time"

	"edulure_backend/internal/events"
	"edulure_backend/internal/subscriptions/repository"
	"edulure_backend/platform/apperr"
	platformevents "edulure_backend/platform/events"

	"github.com/google/uuid"
)

// allowedTransitions defines the legal subscription status moves.
var allowedTransitions = map[string][]string{
	"active":   {"cancelled", "past_due"},
	"past_due": {"active", "cancelled"},
}

// Service implements the subscription use cases
type Service struct {
	repo     *repository.Repository
	eventBus platformevents.Bus
}

// New creates a new subscriptions service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the domain event bus
func (s *Service) SetEventBus(bus platformevents.Bus) {
	s.eventBus = bus
}

// CreateInput contains validated subscription fields
type CreateInput struct {
	PlanCode   string
	PriceCents int64
	Currency   string
	Interval   string
}

// Create starts an active subscription with its first period.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*repository.Subscription, error) {
	now := time.Now().UTC()
	periodEnd := now.AddDate(0, 1, 0)
	if input.Interval == "year" {
		periodEnd = now.AddDate(1, 0, 0)
	}

	sub := &repository.Subscription{
		ID:               uuid.New(),
		UserID:           userID,
		PlanCode:         input.PlanCode,
		Status:           "active",
		PriceCents:       input.PriceCents,
		Currency:         input.Currency,
		Interval:         input.Interval,
		CurrentPeriodEnd: &periodEnd,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// List returns the user's subscriptions
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repository.Subscription, error) {
	return s.repo.List(ctx, userID)
}

// Get returns one subscription
func (s *Service) Get(ctx context.Context, userID, subID uuid.UUID) (*repository.Subscription, error) {
	return s.repo.Get(ctx, userID, subID)
}

// ChangePlan swaps the plan on an active subscription.
func (s *Service) ChangePlan(ctx context.Context, userID, subID uuid.UUID, planCode string, priceCents int64) (*repository.Subscription, error) {
	sub, err := s.repo.Get(ctx, userID, subID)
	if err != nil {
		return nil, err
	}
	if sub.Status != "active" {
		return nil, apperr.Conflict("only active subscriptions can change plan")
	}

	sub.PlanCode = planCode
	sub.PriceCents = priceCents
	sub.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel transitions a subscription to cancelled and publishes the event.
func (s *Service) Cancel(ctx context.Context, userID, subID uuid.UUID, reason string) (*repository.Subscription, error) {
	sub, err := s.repo.Get(ctx, userID, subID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sub.Status, "cancelled") {
		return nil, apperr.Conflict("subscription cannot be cancelled from status " + sub.Status)
	}

	now := time.Now().UTC()
	sub.Status = "cancelled"
	sub.CancelledAt = &now
	if reason != "" {
		sub.CancelReason = &reason
	}
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.SubscriptionCancelled{
			BaseEvent:      events.NewBaseEvent(),
			SubscriptionID: sub.ID,
			UserID:         sub.UserID,
			PlanCode:       sub.PlanCode,
			Reason:         reason,
		})
	}

	return sub, nil
}

// CanTransition reports whether a status move is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
