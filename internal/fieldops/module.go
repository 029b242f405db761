// Package fieldops provides the field service operations domain module.
package fieldops

import (
	"edulure_backend/internal/fieldops/handler"
	"edulure_backend/internal/fieldops/repository"
	"edulure_backend/internal/fieldops/service"
	apphttp "edulure_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the field operations domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new field operations module with all dependencies wired
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "fieldops"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	fieldServices := ctx.Protected.Group("/field-services")
	m.handler.RegisterRoutes(fieldServices)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
