package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portal/auth-service/internal/api/metrics"
	"github.com/portal/auth-service/internal/api/session"
	"github.com/portal/auth-service/internal/core/ports"
)

// Context keys set by Auth on admitted requests.
const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
	ContextRole   = "role"
)

// SessionTokens yields the token bound to the request's session.
type SessionTokens interface {
	Token(c echo.Context) (string, error)
}

// Auth reads the session token, verifies it on every request and injects the
// subject into the context. Missing tokens and failed verification are both
// terminal 401s.
func Auth(sessions SessionTokens, tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := sessions.Token(c)
			if err != nil {
				if session.IsAbsent(err) {
					metrics.GateDecisionsTotal.WithLabelValues("unauthorized").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				}
				return fmt.Errorf("read session: %w", err)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			metrics.GateDecisionsTotal.WithLabelValues("admitted").Inc()
			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextClaims, claims)

			return next(c)
		}
	}
}
