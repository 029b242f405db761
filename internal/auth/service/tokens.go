package service

import (
	"fmt"
	"time"

	"edulure_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and validates the access/refresh token pair.
type TokenIssuer struct {
	cfg config.AuthServiceConfig
}

// NewTokenIssuer creates a token issuer backed by the configured secrets
func NewTokenIssuer(cfg config.AuthServiceConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// Issue signs a fresh access and refresh token for the user.
func (t *TokenIssuer) Issue(userID uuid.UUID, roles []string) (access string, refresh string, err error) {
	now := time.Now().UTC()

	accessClaims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(t.cfg.GetAccessTokenTTL()).Unix(),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(t.cfg.GetJWTAccessSecret()))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": "refresh",
		"iat":  now.Unix(),
		"exp":  now.Add(t.cfg.GetRefreshTokenTTL()).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(t.cfg.GetJWTRefreshSecret()))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// ParseRefresh validates a refresh token and returns the subject user id.
func (t *TokenIssuer) ParseRefresh(rawToken string) (uuid.UUID, error) {
	token, err := jwt.Parse(rawToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(t.cfg.GetJWTRefreshSecret()), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("unexpected claims type")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return uuid.Nil, fmt.Errorf("not a refresh token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("missing subject: %w", err)
	}
	return uuid.Parse(sub)
}
