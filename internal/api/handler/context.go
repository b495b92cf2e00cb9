package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/portal/auth-service/internal/api/middleware"
	"github.com/portal/auth-service/internal/core/domain"
)

// ctxUserID returns the subject the Auth middleware admitted. An empty value
// means the route was mounted without the gate.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ContextClaims).(*domain.Claims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return claims, nil
}
