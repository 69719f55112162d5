package ports

import (
	"context"
	"time"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// LoginResult is returned by AuthService.Login.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int // seconds
	ExpiresAt   time.Time
}

// AuthService exchanges admin credentials for access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	HashPassword(password string) (string, error)
}

// TokenVerifier validates bearer tokens for the auth guard.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
