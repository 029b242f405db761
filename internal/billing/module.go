// Package billing provides the billing domain module.
package billing

import (
	"edulure_backend/internal/billing/handler"
	"edulure_backend/internal/billing/repository"
	"edulure_backend/internal/billing/service"
	apphttp "edulure_backend/internal/http"
	"edulure_backend/platform/events"
	"edulure_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the billing domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new billing module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "billing"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	billing := ctx.Protected.Group("/billing")
	m.handler.RegisterRoutes(billing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
