// Package handler exposes the subscriptions HTTP endpoints.
package handler

import (
	"net/http"

	"edulure_backend/internal/subscriptions/service"
	"edulure_backend/internal/subscriptions/transport"
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

// Handler handles HTTP requests for subscriptions
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new subscriptions handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the subscription routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/change-plan", h.ChangePlan)
	rg.POST("/:id/cancel", h.Cancel)
}

// List returns the user's subscriptions
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	subs, err := h.svc.List(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": subs})
}

// Create starts a subscription
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), identity.UserID(), service.CreateInput{
		PlanCode:   req.PlanCode,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
		Interval:   req.Interval,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": sub})
}

// Get returns one subscription
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	subID, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.svc.Get(c.Request.Context(), identity.UserID(), subID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": sub})
}

// ChangePlan swaps the plan on an active subscription
func (h *Handler) ChangePlan(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	subID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sub, err := h.svc.ChangePlan(c.Request.Context(), identity.UserID(), subID, req.PlanCode, req.PriceCents)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": sub})
}

// Cancel transitions a subscription to cancelled
func (h *Handler) Cancel(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	subID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	sub, err := h.svc.Cancel(c.Request.Context(), identity.UserID(), subID, req.Reason)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": sub})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
