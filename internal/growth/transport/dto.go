// Package transport defines the HTTP request shapes for growth experiments.
package transport

// VariantPayload is one experiment arm
type VariantPayload struct {
	Key    string `json:"key" validate:"required,max=60"`
	Label  string `json:"label" validate:"omitempty,max=120"`
	Weight int    `json:"weight" validate:"required"`
}

// ExperimentRequest is the create/update payload
type ExperimentRequest struct {
	Name       string           `json:"name" validate:"required,max=160"`
	Hypothesis string           `json:"hypothesis" validate:"omitempty,max=1000"`
	MetricKey  string           `json:"metricKey" validate:"required,max=80"`
	Variants   []VariantPayload `json:"variants" validate:"required,min=2,dive"`
}

// ToggleRequest starts or stops an experiment
type ToggleRequest struct {
	Running *bool `json:"running" validate:"required"`
}
