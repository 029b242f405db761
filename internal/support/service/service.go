// Package service implements the support ticket use cases.
package service

import (
	"context"
	"time"

	"edulure_backend/internal/events"
	"edulure_backend/internal/support/repository"
	"edulure_backend/platform/apperr"
	platformevents "edulure_backend/platform/events"
	"edulure_backend/platform/phone"
	"edulure_backend/platform/sanitize"

	"github.com/google/uuid"
)

// ticketTransitions defines the legal ticket status moves.
var ticketTransitions = map[string][]string{
	"open":        {"in_progress", "resolved", "closed"},
	"in_progress": {"resolved", "closed", "open"},
	"resolved":    {"closed", "open"},
}

// Service implements the support use cases
type Service struct {
	repo     *repository.Repository
	eventBus platformevents.Bus
}

// New creates a new support service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the domain event bus
func (s *Service) SetEventBus(bus platformevents.Bus) {
	s.eventBus = bus
}

// CreateInput contains validated ticket fields
type CreateInput struct {
	Subject      string
	Body         string
	Priority     string
	ContactEmail string
	ContactPhone string
}

// Create opens a ticket. Free text is sanitized and the contact phone is
// normalized to E.164 when it parses.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*repository.Ticket, error) {
	now := time.Now().UTC()
	ticket := &repository.Ticket{
		ID:           uuid.New(),
		UserID:       userID,
		Subject:      sanitize.Text(input.Subject),
		Body:         sanitize.Text(input.Body),
		Status:       "open",
		Priority:     input.Priority,
		ContactEmail: input.ContactEmail,
		ContactPhone: phone.NormalizeE164(input.ContactPhone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.TicketCreated{
			BaseEvent:     events.NewBaseEvent(),
			TicketID:      ticket.ID,
			UserID:        ticket.UserID,
			Subject:       ticket.Subject,
			Priority:      ticket.Priority,
			ContactEmail:  ticket.ContactEmail,
			ContactPhone:  ticket.ContactPhone,
			InitialStatus: ticket.Status,
		})
	}

	return ticket, nil
}

// List returns the user's tickets
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]repository.Ticket, error) {
	return s.repo.List(ctx, userID)
}

// TicketWithReplies pairs a ticket with its conversation
type TicketWithReplies struct {
	Ticket  repository.Ticket  `json:"ticket"`
	Replies []repository.Reply `json:"replies"`
}

// Get returns one ticket with its replies
func (s *Service) Get(ctx context.Context, userID, ticketID uuid.UUID) (*TicketWithReplies, error) {
	ticket, err := s.repo.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	replies, err := s.repo.ListReplies(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []repository.Reply{}
	}
	return &TicketWithReplies{Ticket: *ticket, Replies: replies}, nil
}

// UpdateStatus transitions a ticket and publishes the change.
func (s *Service) UpdateStatus(ctx context.Context, userID, ticketID uuid.UUID, status string) (*repository.Ticket, error) {
	ticket, err := s.repo.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if !canTransition(ticket.Status, status) {
		return nil, apperr.Conflict("ticket cannot move from " + ticket.Status + " to " + status)
	}

	oldStatus := ticket.Status
	if err := s.repo.UpdateStatus(ctx, userID, ticketID, status); err != nil {
		return nil, err
	}
	ticket.Status = status

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.TicketStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			TicketID:  ticket.ID,
			UserID:    ticket.UserID,
			OldStatus: oldStatus,
			NewStatus: status,
		})
	}

	return ticket, nil
}

// Reply appends a message to an open conversation.
func (s *Service) Reply(ctx context.Context, userID, ticketID uuid.UUID, body string, fromStaff bool) (*repository.Reply, error) {
	ticket, err := s.repo.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == "closed" {
		return nil, apperr.Conflict("closed tickets do not accept replies")
	}

	reply := &repository.Reply{
		ID:        uuid.New(),
		TicketID:  ticketID,
		AuthorID:  userID,
		Body:      sanitize.Text(body),
		FromStaff: fromStaff,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func canTransition(from, to string) bool {
	for _, allowed := range ticketTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
