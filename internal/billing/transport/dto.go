// Package transport defines the HTTP request shapes for the billing module.
package transport

import "time"

// CreateInvoiceRequest is the invoice creation payload
type CreateInvoiceRequest struct {
	Description string     `json:"description" validate:"required,max=500"`
	AmountCents int64      `json:"amountCents" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"required,len=3,uppercase"`
	DueAt       *time.Time `json:"dueAt"`
}

// CreatePaymentMethodRequest is the payment method creation payload
type CreatePaymentMethodRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=card sepa_debit"`
	Brand     string `json:"brand" validate:"omitempty,max=40"`
	Last4     string `json:"last4" validate:"required,len=4,numeric"`
	ExpMonth  int    `json:"expMonth" validate:"required,min=1,max=12"`
	ExpYear   int    `json:"expYear" validate:"required,min=2024,max=2100"`
	IsDefault bool   `json:"isDefault"`
}
