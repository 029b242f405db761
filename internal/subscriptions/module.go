// Package subscriptions provides the subscriptions domain module.
package subscriptions

import (
	apphttp "edulure_backend/internal/http"
	"edulure_backend/internal/subscriptions/handler"
	"edulure_backend/internal/subscriptions/repository"
	"edulure_backend/internal/subscriptions/service"
	"edulure_backend/platform/events"
	"edulure_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the subscriptions domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new subscriptions module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "subscriptions"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	subs := ctx.Protected.Group("/subscriptions")
	m.handler.RegisterRoutes(subs)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
