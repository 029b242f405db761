// Package transport defines the HTTP request shapes for support tickets.
package transport

// CreateTicketRequest is the ticket creation payload
type CreateTicketRequest struct {
	Subject      string `json:"subject" validate:"required,max=200"`
	Body         string `json:"body" validate:"required,max=5000"`
	Priority     string `json:"priority" validate:"required,oneof=low normal high urgent"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,max=32"`
}

// UpdateStatusRequest transitions a ticket
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// ReplyRequest appends a message to the conversation
type ReplyRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}
