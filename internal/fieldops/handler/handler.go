// Package handler exposes the field service operations HTTP endpoints.
package handler

import (
	"net/http"

	"edulure_backend/internal/fieldops/service"
	"edulure_backend/internal/fieldops/transport"
	"edulure_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the field operations workspace
type Handler struct {
	svc *service.Service
}

// New creates a new field operations handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the field operations routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workspace", h.GetWorkspace)
	rg.GET("/workspace/search-index", h.GetSearchIndex)
	rg.POST("/workspace/reminders/dispatch", h.DispatchReminders)
}

// GetWorkspace returns the operational workspace for the authenticated
// account. The scope query narrows the payload to one side; the default
// returns both scopes plus the search index.
func (h *Handler) GetWorkspace(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	var query transport.WorkspaceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	switch query.Scope {
	case "customer", "provider":
		ws, err := h.svc.GetWorkspace(c.Request.Context(), identity.UserID(), query.Scope)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, transport.WorkspaceResponse{Data: ws})
	default:
		snapshot, err := h.svc.BuildSnapshot(c.Request.Context(), identity.UserID())
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, transport.SnapshotResponse{Data: snapshot})
	}
}

// DispatchReminders queues the pending visit reminders for delivery.
func (h *Handler) DispatchReminders(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	queued, err := h.svc.DispatchReminders(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"queued": queued})
}

// GetSearchIndex returns the workspace rows for the global search index.
func (h *Handler) GetSearchIndex(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)

	entries, err := h.svc.SearchIndex(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"data": entries})
}
