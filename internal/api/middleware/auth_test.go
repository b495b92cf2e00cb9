package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/infrastructure/security"
)

type stubSessions struct {
	token string
	err   error
}

func (s stubSessions) Token(echo.Context) (string, error) {
	return s.token, s.err
}

func newTokens(t *testing.T) *security.TokenService {
	t.Helper()
	svc, err := security.NewTokenService("secret", "test", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc
}

func runAuth(t *testing.T, sessions SessionTokens, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(sessions, newTokens(t))(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens(t)
	signed, err := tokens.Issue(domain.Claims{Subject: "user-1", Name: "Alice", Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec := runAuth(t, stubSessions{token: signed}, func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(ContextRole) != domain.RoleMember {
			t.Fatalf("role not set")
		}
		claims, ok := c.Get(ContextClaims).(*domain.Claims)
		if !ok || claims.Name != "Alice" {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_NoSessionToken(t *testing.T) {
	rec := runAuth(t, stubSessions{err: domain.ErrNoSession}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := runAuth(t, stubSessions{token: "not-a-token"}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ForeignSignature(t *testing.T) {
	other, err := security.NewTokenService("other-secret", "test", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	signed, err := other.Issue(domain.Claims{Subject: "user-1"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := runAuth(t, stubSessions{token: signed}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SessionStoreFailure(t *testing.T) {
	rec := runAuth(t, stubSessions{err: errors.New("redis down")}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
