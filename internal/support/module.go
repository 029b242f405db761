// Package support provides the support ticket domain module.
package support

import (
	apphttp "edulure_backend/internal/http"
	"edulure_backend/internal/support/handler"
	"edulure_backend/internal/support/repository"
	"edulure_backend/internal/support/service"
	"edulure_backend/platform/events"
	"edulure_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the support domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new support module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "support"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	tickets := ctx.Protected.Group("/support/tickets")
	m.handler.RegisterRoutes(tickets)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
