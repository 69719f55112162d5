package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/folio/portfolio-api/internal/core/domain"
)

// DefaultTokenTTL applies when neither the caller nor the config set a lifetime.
const DefaultTokenTTL = 8 * time.Hour

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService for one of HS256, HS384 or HS512.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL is the lifetime applied when Issue is called without one.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for subject. A non-positive ttl uses the service default.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm and expiry, and returns the token subject.
// Every failure is reported as domain.ErrUnauthorized.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidTokenPayload
	}
	return &domain.Identity{Username: claims.Subject}, nil
}
