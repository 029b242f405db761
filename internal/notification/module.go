// Package notification subscribes to domain events and turns them into
// outbound email. It has no HTTP surface of its own.
package notification

import (
	"context"
	"fmt"

	"edulure_backend/internal/email"
	"edulure_backend/internal/events"
	"edulure_backend/platform/logger"
)

// Module listens on the event bus and sends transactional mail.
type Module struct {
	sender *email.Sender
	log    *logger.Logger
}

// New creates a new notification module
func New(sender *email.Sender, log *logger.Logger) *Module {
	return &Module{sender: sender, log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserSignedUp{}.EventName(), m)
	bus.Subscribe(events.TicketCreated{}.EventName(), m)
}

// Handle dispatches a domain event to its notification handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserSignedUp:
		return m.handleUserSignedUp(ctx, e)
	case events.TicketCreated:
		return m.handleTicketCreated(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleUserSignedUp(ctx context.Context, e events.UserSignedUp) error {
	msg := email.Message{
		To:      e.Email,
		Subject: "Welcome to Edulure",
		TextBody: "Hi,\n\nYour Edulure account is ready. Sign in to explore courses " +
			"and track your field service visits from the workspace.\n\nThe Edulure team",
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.log.Error("failed to send welcome email", "user_id", e.UserID, "error", err)
		return err
	}
	return nil
}

func (m *Module) handleTicketCreated(ctx context.Context, e events.TicketCreated) error {
	if e.ContactEmail == "" {
		return nil
	}

	msg := email.Message{
		To:      e.ContactEmail,
		Subject: fmt.Sprintf("We received your support request: %s", e.Subject),
		TextBody: fmt.Sprintf("Hi,\n\nYour support ticket %q has been opened with %s priority. "+
			"Our team will follow up in this thread.\n\nThe Edulure support team",
			e.Subject, e.Priority),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.log.Error("failed to send ticket acknowledgement", "ticket_id", e.TicketID, "error", err)
		return err
	}
	return nil
}
