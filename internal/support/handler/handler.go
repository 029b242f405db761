// Package handler exposes the support HTTP endpoints.
package handler

import (
	"net/http"

	"edulure_backend/internal/support/service"
	"edulure_backend/internal/support/transport"
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

// Handler handles HTTP requests for support tickets
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new support handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the ticket routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/replies", h.Reply)
}

// List returns the user's tickets
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	tickets, err := h.svc.List(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": tickets})
}

// Create opens a ticket
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ticket, err := h.svc.Create(c.Request.Context(), identity.UserID(), service.CreateInput{
		Subject:      req.Subject,
		Body:         req.Body,
		Priority:     req.Priority,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": ticket})
}

// Get returns one ticket with its replies
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	ticketID, ok := parseID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Get(c.Request.Context(), identity.UserID(), ticketID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": ticket})
}

// UpdateStatus transitions a ticket
func (h *Handler) UpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	ticketID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ticket, err := h.svc.UpdateStatus(c.Request.Context(), identity.UserID(), ticketID, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": ticket})
}

// Reply appends a message to the ticket conversation
func (h *Handler) Reply(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	ticketID, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), identity.UserID(), ticketID, req.Body, identity.HasRole("admin"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": reply})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
