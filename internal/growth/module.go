// Package growth provides the growth experiments domain module.
package growth

import (
	"edulure_backend/internal/growth/handler"
	"edulure_backend/internal/growth/repository"
	"edulure_backend/internal/growth/service"
	apphttp "edulure_backend/internal/http"
	"edulure_backend/platform/events"
	"edulure_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the growth domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new growth module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "growth"
}

// RegisterRoutes registers the module's routes.
// Experiment management is an operator concern and lives under admin.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	experiments := ctx.Admin.Group("/experiments")
	m.handler.RegisterRoutes(experiments)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
