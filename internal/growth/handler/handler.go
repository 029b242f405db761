// Package handler exposes the growth experiment HTTP endpoints.
package handler

import (
	"net/http"

	"edulure_backend/internal/growth/repository"
	"edulure_backend/internal/growth/service"
	"edulure_backend/internal/growth/transport"
	"edulure_backend/platform/httpkit"
	"edulure_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for growth experiments
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new growth handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the experiment routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id/running", h.Toggle)
}

// List returns all experiments
func (h *Handler) List(c *gin.Context) {
	experiments, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": experiments})
}

// Create registers a stopped experiment
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	input, ok := h.bindExperiment(c)
	if !ok {
		return
	}

	exp, err := h.svc.Create(c.Request.Context(), identity.UserID(), input)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": exp})
}

// Get returns one experiment
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	exp, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": exp})
}

// Update edits a stopped experiment
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, ok := h.bindExperiment(c)
	if !ok {
		return
	}

	exp, err := h.svc.Update(c.Request.Context(), id, input)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": exp})
}

// Toggle starts or stops an experiment
func (h *Handler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	exp, err := h.svc.SetRunning(c.Request.Context(), id, *req.Running)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": exp})
}

func (h *Handler) bindExperiment(c *gin.Context) (service.ExperimentInput, bool) {
	var req transport.ExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return service.ExperimentInput{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return service.ExperimentInput{}, false
	}

	variants := make([]repository.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, repository.Variant{Key: v.Key, Label: v.Label, Weight: v.Weight})
	}

	return service.ExperimentInput{
		Name:       req.Name,
		Hypothesis: req.Hypothesis,
		MetricKey:  req.MetricKey,
		Variants:   variants,
	}, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
