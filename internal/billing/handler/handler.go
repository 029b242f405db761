// Package handler exposes the billing HTTP endpoints.
package handler

import (
	"net/http"

	"edulure_backend/internal/billing/service"
	"edulure_backend/internal/billing/transport"
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

// Handler handles HTTP requests for billing
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new billing handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the billing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.ListInvoices)
	rg.POST("/invoices", h.CreateInvoice)
	rg.GET("/invoices/:id", h.GetInvoice)
	rg.POST("/invoices/:id/pay", h.MarkInvoicePaid)
	rg.POST("/invoices/:id/void", h.VoidInvoice)

	rg.GET("/payment-methods", h.ListPaymentMethods)
	rg.POST("/payment-methods", h.CreatePaymentMethod)
	rg.POST("/payment-methods/:id/default", h.SetDefaultPaymentMethod)
	rg.DELETE("/payment-methods/:id", h.DeletePaymentMethod)
}

// ListInvoices returns the user's invoices
func (h *Handler) ListInvoices(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	invoices, err := h.svc.ListInvoices(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": invoices})
}

// CreateInvoice creates a new open invoice
func (h *Handler) CreateInvoice(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	invoice, err := h.svc.CreateInvoice(c.Request.Context(), identity.UserID(), service.CreateInvoiceInput{
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		DueAt:       req.DueAt,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": invoice})
}

// GetInvoice returns one invoice
func (h *Handler) GetInvoice(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	invoiceID, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.svc.GetInvoice(c.Request.Context(), identity.UserID(), invoiceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": invoice})
}

// MarkInvoicePaid transitions an invoice to paid
func (h *Handler) MarkInvoicePaid(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	invoiceID, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.svc.MarkInvoicePaid(c.Request.Context(), identity.UserID(), invoiceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": invoice})
}

// VoidInvoice transitions an invoice to void
func (h *Handler) VoidInvoice(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	invoiceID, ok := parseID(c)
	if !ok {
		return
	}

	invoice, err := h.svc.VoidInvoice(c.Request.Context(), identity.UserID(), invoiceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": invoice})
}

// ListPaymentMethods returns the user's payment methods
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	methods, err := h.svc.ListPaymentMethods(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": methods})
}

// CreatePaymentMethod stores a payment method
func (h *Handler) CreatePaymentMethod(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var req transport.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	method, err := h.svc.CreatePaymentMethod(c.Request.Context(), identity.UserID(), service.CreatePaymentMethodInput{
		Kind:      req.Kind,
		Brand:     req.Brand,
		Last4:     req.Last4,
		ExpMonth:  req.ExpMonth,
		ExpYear:   req.ExpYear,
		IsDefault: req.IsDefault,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{"data": method})
}

// SetDefaultPaymentMethod marks a payment method as default
func (h *Handler) SetDefaultPaymentMethod(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	methodID, ok := parseID(c)
	if !ok {
		return
	}

	err := h.svc.SetDefaultPaymentMethod(c.Request.Context(), identity.UserID(), methodID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "ok"})
}

// DeletePaymentMethod removes a payment method
func (h *Handler) DeletePaymentMethod(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	methodID, ok := parseID(c)
	if !ok {
		return
	}

	err := h.svc.DeletePaymentMethod(c.Request.Context(), identity.UserID(), methodID)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
