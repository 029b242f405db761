// Package search provides the global search domain module.
package search

import (
	apphttp "edulure_backend/internal/http"
	"edulure_backend/internal/search/handler"
	"edulure_backend/internal/search/repository"
	"edulure_backend/internal/search/service"
	"edulure_backend/platform/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the search domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new search module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.AppConfig) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	h := handler.New(svc)

	return &Module{handler: h}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "search"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	search := ctx.Protected.Group("/search")
	m.handler.RegisterRoutes(search)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
