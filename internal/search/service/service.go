// Package service implements the global search use case.
package service

import (
	"context"
	"strings"

	"edulure_backend/internal/search/repository"
	"edulure_backend/platform/apperr"
	"edulure_backend/platform/config"

	"github.com/google/uuid"
)

const (
	minQueryLength = 2
	maxResults     = 25
)

// Result is one search result with its frontend deep link
type Result struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link"`
}

// Service implements the global search
type Service struct {
	repo *repository.Repository
	cfg  config.AppConfig
}

// New creates a new search service
func New(repo *repository.Repository, cfg config.AppConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Search runs the global search and decorates hits with deep links.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, term string) ([]Result, error) {
	term = strings.TrimSpace(term)
	if len(term) < minQueryLength {
		return nil, apperr.Validation("search term must be at least 2 characters")
	}

	hits, err := s.repo.Search(ctx, userID, term, maxResults)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			Kind:     hit.Kind,
			ID:       hit.ID,
			Title:    hit.Title,
			Subtitle: hit.Subtitle,
			Link:     s.buildFrontendLink(hit),
		})
	}
	return results, nil
}

// buildFrontendLink maps a hit to its frontend route.
func (s *Service) buildFrontendLink(hit repository.Hit) string {
	base := strings.TrimRight(s.cfg.GetAppBaseURL(), "/")
	switch hit.Kind {
	case "order":
		return base + "/field-services/orders/" + hit.ID
	case "ticket":
		return base + "/support/tickets/" + hit.ID
	case "experiment":
		return base + "/admin/experiments/" + hit.ID
	default:
		return base
	}
}
