// Package service implements the field service operations use cases.
package service

import (
	"context"
	"time"

	"edulure_backend/internal/fieldops/repository"
	"edulure_backend/internal/fieldops/workspace"
	"edulure_backend/internal/scheduler"
	"edulure_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates the workspace build: it fans out the three row
// queries, pins the clock once, and hands everything to the pure builder.
type Service struct {
	repo      *repository.Repository
	reminders scheduler.ReminderScheduler
	now       func() time.Time
}

// New creates a new field operations service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// SetClock overrides the clock source, used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetReminderScheduler injects the queue producer for reminder dispatch.
// Without it DispatchReminders reports the scheduler as unavailable.
func (s *Service) SetReminderScheduler(sched scheduler.ReminderScheduler) {
	s.reminders = sched
}

// BuildSnapshot loads the raw rows for the account and assembles the full
// workspace snapshot. The three queries run concurrently; the build itself
// is synchronous and pure.
func (s *Service) BuildSnapshot(ctx context.Context, accountID uuid.UUID) (workspace.Snapshot, error) {
	userID, err := s.repo.ResolveUserID(ctx, accountID)
	if err != nil {
		return workspace.Snapshot{}, err
	}

	var (
		orders    []workspace.OrderRow
		events    []workspace.EventRow
		providers []workspace.ProviderRow
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		orders, err = s.repo.ListOrderRows(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		events, err = s.repo.ListEventRows(groupCtx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		providers, err = s.repo.ListProviderRows(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		return workspace.Snapshot{}, err
	}

	return workspace.Build(s.now(), workspace.User{ID: userID}, orders, events, providers), nil
}

// GetWorkspace returns a single scope of the snapshot.
func (s *Service) GetWorkspace(ctx context.Context, accountID uuid.UUID, scope string) (workspace.Workspace, error) {
	snapshot, err := s.BuildSnapshot(ctx, accountID)
	if err != nil {
		return workspace.Workspace{}, err
	}

	switch scope {
	case "customer":
		return snapshot.Customer, nil
	case "provider":
		return snapshot.Provider, nil
	default:
		return workspace.Workspace{}, apperr.BadRequest("scope must be customer or provider")
	}
}

// DispatchReminders queues every still-scheduled visit reminder in the
// customer scope for email dispatch and returns how many were queued.
func (s *Service) DispatchReminders(ctx context.Context, accountID uuid.UUID) (int, error) {
	if s.reminders == nil {
		return 0, apperr.New(apperr.KindConflict, "reminder dispatch is not enabled on this deployment")
	}

	snapshot, err := s.BuildSnapshot(ctx, accountID)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, assignment := range snapshot.Customer.Assignments {
		if assignment.Customer.Email == "" {
			continue
		}
		for _, reminder := range assignment.Reminders {
			if reminder.Status != "scheduled" || reminder.SendAt == nil {
				continue
			}
			payload := scheduler.VisitReminderPayload{
				ReminderID: reminder.ID,
				OrderID:    assignment.OrderID,
				Label:      reminder.Label,
				Email:      assignment.Customer.Email,
				Name:       assignment.CustomerName,
				Reference:  assignment.Reference,
				SendAt:     *reminder.SendAt,
			}
			if err := s.reminders.ScheduleVisitReminder(ctx, payload, *reminder.SendAt); err != nil {
				return queued, err
			}
			queued++
		}
	}
	return queued, nil
}

// SearchIndex returns the workspace search rows for the account, consumed
// by the global search module.
func (s *Service) SearchIndex(ctx context.Context, accountID uuid.UUID) ([]workspace.SearchEntry, error) {
	snapshot, err := s.BuildSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snapshot.SearchIndex, nil
}
