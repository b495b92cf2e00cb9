package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/core/ports"
)

// DashboardHandler serves the routes mounted under /dashboard. Every route
// sits behind the Auth gate.
type DashboardHandler struct {
	authService ports.AuthService
}

func NewDashboardHandler(authService ports.AuthService) *DashboardHandler {
	return &DashboardHandler{authService: authService}
}

type sessionView struct {
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type overviewData struct {
	User    *domain.User `json:"user"`
	Session sessionView  `json:"session"`
}

type overviewResponse struct {
	Data overviewData `json:"data"`
}

type sessionResponse struct {
	Data sessionView `json:"data"`
}

func toSessionView(c *domain.Claims) sessionView {
	return sessionView{
		Subject:   c.Subject,
		Name:      c.Name,
		Email:     c.Email,
		Avatar:    c.Avatar,
		Role:      c.Role,
		IssuedAt:  c.IssuedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

// Overview returns the signed-in user's profile with their session window.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  overviewResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  messageResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: msgUserNotFound})
		}
		return err
	}

	return c.JSON(http.StatusOK, overviewResponse{Data: overviewData{
		User:    user,
		Session: toSessionView(claims),
	}})
}

// Session returns the verified claims of the current session.
//
// @Summary      Dashboard session
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/session [get]
func (h *DashboardHandler) Session(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Data: toSessionView(claims)})
}
