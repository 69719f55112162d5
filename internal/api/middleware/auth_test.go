package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/folio/portfolio-api/internal/core/domain"
)

type stubVerifier struct {
	tokens map[string]string // token -> username
	got    string
}

func (s *stubVerifier) Verify(token string) (*domain.Identity, error) {
	s.got = token
	username, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{Username: username}, nil
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{tokens: map[string]string{"good-token": "admin"}}
}

func run(t *testing.T, header string) (bool, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(newStubVerifier())(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUsername) != "admin" {
			t.Fatalf("username not set on echo context")
		}
		username, ok := UsernameFrom(c.Request().Context())
		if !ok || username != "admin" {
			t.Fatalf("username not set on request context")
		}
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return called, rec, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	called, rec, err := run(t, "Bearer good-token")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	called, _, err := run(t, "bearer good-token")
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to be accepted, err=%v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := map[string]struct {
		header string
		want   error
	}{
		"missing header":  {"", domain.ErrNotAuthenticated},
		"wrong scheme":    {"Basic good-token", domain.ErrNotAuthenticated},
		"scheme only":     {"Bearer", domain.ErrNotAuthenticated},
		"blank token":     {"Bearer    ", domain.ErrNotAuthenticated},
		"unknown token":   {"Bearer forged", domain.ErrUnauthorized},
		"token no scheme": {"good-token", domain.ErrNotAuthenticated},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			called, _, err := run(t, tc.header)
			if called {
				t.Fatal("next must not be called")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("every rejection must be an ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestRequire_TrimsToken(t *testing.T) {
	v := newStubVerifier()
	id, err := Require(v, "Bearer   good-token  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Username != "admin" || v.got != "good-token" {
		t.Fatalf("unexpected identity %q for token %q", id.Username, v.got)
	}
}

func TestUsernameFrom_Empty(t *testing.T) {
	if _, ok := UsernameFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Fatal("expected no username on a bare context")
	}
}
