// Package service implements the billing use cases.
package service

import (
	"context"
	"time"

	"edulure_backend/internal/billing/repository"
	"edulure_backend/internal/events"
	"edulure_backend/platform/apperr"
	platformevents "edulure_backend/platform/events"

	"github.com/google/uuid"
)

// Service implements the billing use cases
type Service struct {
	repo     *repository.Repository
	eventBus platformevents.Bus
}

// New creates a new billing service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the domain event bus
func (s *Service) SetEventBus(bus platformevents.Bus) {
	s.eventBus = bus
}

// CreateInvoiceInput contains validated invoice fields
type CreateInvoiceInput struct {
	Description string
	AmountCents int64
	Currency    string
	DueAt       *time.Time
}

// CreateInvoice creates an open invoice with a generated number.
func (s *Service) CreateInvoice(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*repository.Invoice, error) {
	number, err := s.repo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoice := &repository.Invoice{
		ID:          uuid.New(),
		UserID:      userID,
		Number:      number,
		Status:      "open",
		Description: input.Description,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		DueAt:       input.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices returns the user's invoices
func (s *Service) ListInvoices(ctx context.Context, userID uuid.UUID) ([]repository.Invoice, error) {
	return s.repo.ListInvoices(ctx, userID)
}

// GetInvoice returns one invoice
func (s *Service) GetInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (*repository.Invoice, error) {
	return s.repo.GetInvoice(ctx, userID, invoiceID)
}

// MarkInvoicePaid transitions an open invoice to paid and publishes the
// paid event.
func (s *Service) MarkInvoicePaid(ctx context.Context, userID, invoiceID uuid.UUID) (*repository.Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != "open" {
		return nil, apperr.Conflict("only open invoices can be marked paid")
	}

	paidAt := time.Now().UTC()
	if err := s.repo.UpdateInvoiceStatus(ctx, userID, invoiceID, "paid", &paidAt); err != nil {
		return nil, err
	}
	invoice.Status = "paid"
	invoice.PaidAt = &paidAt

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.InvoicePaid{
			BaseEvent:   events.NewBaseEvent(),
			InvoiceID:   invoice.ID,
			UserID:      invoice.UserID,
			AmountCents: invoice.AmountCents,
			Currency:    invoice.Currency,
		})
	}

	return invoice, nil
}

// VoidInvoice transitions an open invoice to void.
func (s *Service) VoidInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (*repository.Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != "open" {
		return nil, apperr.Conflict("only open invoices can be voided")
	}

	if err := s.repo.UpdateInvoiceStatus(ctx, userID, invoiceID, "void", nil); err != nil {
		return nil, err
	}
	invoice.Status = "void"
	return invoice, nil
}

// CreatePaymentMethodInput contains validated payment method fields
type CreatePaymentMethodInput struct {
	Kind      string
	Brand     string
	Last4     string
	ExpMonth  int
	ExpYear   int
	IsDefault bool
}

// CreatePaymentMethod stores a payment method
func (s *Service) CreatePaymentMethod(ctx context.Context, userID uuid.UUID, input CreatePaymentMethodInput) (*repository.PaymentMethod, error) {
	pm := &repository.PaymentMethod{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      input.Kind,
		Brand:     input.Brand,
		Last4:     input.Last4,
		ExpMonth:  input.ExpMonth,
		ExpYear:   input.ExpYear,
		IsDefault: input.IsDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreatePaymentMethod(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// ListPaymentMethods returns the user's payment methods
func (s *Service) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]repository.PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx, userID)
}

// SetDefaultPaymentMethod marks one payment method as default
func (s *Service) SetDefaultPaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	return s.repo.SetDefaultPaymentMethod(ctx, userID, methodID)
}

// DeletePaymentMethod removes a payment method
func (s *Service) DeletePaymentMethod(ctx context.Context, userID, methodID uuid.UUID) error {
	return s.repo.DeletePaymentMethod(ctx, userID, methodID)
}
