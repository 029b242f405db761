// Package service implements account registration and session issuance.
package service

import (
	"context"
	"strings"
	"time"

	"edulure_backend/internal/auth/repository"
	"edulure_backend/internal/events"
	"edulure_backend/platform/apperr"
	"edulure_backend/platform/config"
	platformevents "edulure_backend/platform/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMsg = "invalid email or password"

// Service implements the auth use cases
type Service struct {
	repo     *repository.Repository
	tokens   *TokenIssuer
	eventBus platformevents.Bus
}

// New creates a new auth service
func New(repo *repository.Repository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, tokens: NewTokenIssuer(cfg)}
}

// SetEventBus injects the domain event bus
func (s *Service) SetEventBus(bus platformevents.Bus) {
	s.eventBus = bus
}

// Account is the service-level account projection, password hash excluded.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an issued token pair plus the account it belongs to.
type Session struct {
	Account      Account `json:"account"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// RegisterInput contains validated registration fields
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates an account with a learner role and issues a session.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &repository.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Roles:        []string{"learner"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.UserSignedUp{
			BaseEvent: events.NewBaseEvent(),
			UserID:    user.ID,
			Email:     user.Email,
		})
	}

	return s.issueSession(user)
}

// Login verifies credentials and issues a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized(invalidCredentialsMsg)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Unauthorized(invalidCredentialsMsg)
	}

	return s.issueSession(user)
}

// Refresh validates a refresh token and issues a fresh session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}
		return nil, err
	}

	return s.issueSession(user)
}

// Me returns the account for an authenticated user id.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*Account, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account := toAccount(user)
	return &account, nil
}

func (s *Service) issueSession(user *repository.User) (*Session, error) {
	access, refresh, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to issue tokens", err)
	}
	return &Session{Account: toAccount(user), AccessToken: access, RefreshToken: refresh}, nil
}

func toAccount(user *repository.User) Account {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	return Account{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}
