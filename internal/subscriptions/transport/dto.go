// Package transport defines the HTTP request shapes for subscriptions.
package transport

// CreateSubscriptionRequest is the subscription creation payload
type CreateSubscriptionRequest struct {
	PlanCode   string `json:"planCode" validate:"required,max=60"`
	PriceCents int64  `json:"priceCents" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3,uppercase"`
	Interval   string `json:"interval" validate:"required,oneof=month year"`
}

// ChangePlanRequest is the plan change payload
type ChangePlanRequest struct {
	PlanCode   string `json:"planCode" validate:"required,max=60"`
	PriceCents int64  `json:"priceCents" validate:"required,gt=0"`
}

// CancelRequest carries the optional cancellation reason
type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
