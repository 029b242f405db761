// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"edulure_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// =============================================================================
// Billing Domain Events
// =============================================================================

// InvoicePaid is published when an invoice transitions to paid.
type InvoicePaid struct {
	BaseEvent
	InvoiceID   uuid.UUID `json:"invoiceId"`
	UserID      uuid.UUID `json:"userId"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
}

func (e InvoicePaid) EventName() string { return "billing.invoice.paid" }

// =============================================================================
// Subscription Domain Events
// =============================================================================

// SubscriptionCancelled is published when a subscriber cancels a plan.
type SubscriptionCancelled struct {
	BaseEvent
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	UserID         uuid.UUID `json:"userId"`
	PlanCode       string    `json:"planCode"`
	Reason         string    `json:"reason,omitempty"`
}

func (e SubscriptionCancelled) EventName() string { return "subscriptions.cancelled" }

// =============================================================================
// Support Domain Events
// =============================================================================

// TicketCreated is published when a support ticket is opened.
type TicketCreated struct {
	BaseEvent
	TicketID      uuid.UUID `json:"ticketId"`
	UserID        uuid.UUID `json:"userId"`
	Subject       string    `json:"subject"`
	Priority      string    `json:"priority"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	InitialStatus string    `json:"initialStatus"`
}

func (e TicketCreated) EventName() string { return "support.ticket.created" }

// TicketStatusChanged is published when a ticket's status is updated.
type TicketStatusChanged struct {
	BaseEvent
	TicketID  uuid.UUID `json:"ticketId"`
	UserID    uuid.UUID `json:"userId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e TicketStatusChanged) EventName() string { return "support.ticket.status_changed" }

// =============================================================================
// Growth Domain Events
// =============================================================================

// ExperimentLaunched is published when a growth experiment starts running.
type ExperimentLaunched struct {
	BaseEvent
	ExperimentID uuid.UUID `json:"experimentId"`
	Name         string    `json:"name"`
}

func (e ExperimentLaunched) EventName() string { return "growth.experiment.launched" }
