package service

import (
	"context"
	"crypto/subtle"

	"github.com/rs/zerolog"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

// AuthService implements admin login against the configured credentials.
type AuthService struct {
	admin  domain.Admin
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(admin domain.Admin, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{admin: admin, tokens: tokens, log: log}
}

// Login exchanges the admin credentials for an access token. The username
// comparison is constant time and bcrypt runs for every attempt, so an
// unknown user and a wrong password cannot be told apart.
func (s *AuthService) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := VerifyPassword(password, s.admin.PasswordHash)
	if !userOK || !passOK {
		s.log.Warn().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(s.admin.Username, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", s.admin.Username).Time("expires_at", expiresAt).Msg("admin logged in")
	return &ports.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

// HashPassword is the development helper used to produce ADMIN_PASSWORD_HASH.
func (s *AuthService) HashPassword(password string) (string, error) {
	return HashPassword(password)
}
