// Package handler exposes the global search HTTP endpoint.
package handler

import (
	"edulure_backend/internal/search/service"
	"edulure_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for global search
type Handler struct {
	svc *service.Service
}

// New creates a new search handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the search route
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
}

// Search runs the global search for the authenticated user
func (h *Handler) Search(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	results, err := h.svc.Search(c.Request.Context(), identity.UserID(), c.Query("q"))
	if httpkit.HandleError(c, err) {
		return
	}
	if results == nil {
		results = []service.Result{}
	}
	httpkit.OK(c, gin.H{"data": results})
}
