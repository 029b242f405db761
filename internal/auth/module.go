// Package auth provides the authentication domain module.
package auth

import (
	"edulure_backend/internal/auth/handler"
	"edulure_backend/internal/auth/repository"
	"edulure_backend/internal/auth/service"
	apphttp "edulure_backend/internal/http"
	"edulure_backend/platform/config"
	"edulure_backend/platform/events"
	"edulure_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	public.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterPublicRoutes(public)

	protected := ctx.Protected.Group("/auth")
	m.handler.RegisterProtectedRoutes(protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
